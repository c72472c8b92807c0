package markup

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFragmentErrorMessage(t *testing.T) {
	reason := errors.New("bad")
	tests := []struct {
		frag string
		want string
	}{
		{"<foo>", "<foo>"},
		{strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{strings.Repeat("a", 41), strings.Repeat("a", 40) + "..."},
		// é spans bytes 39 and 40, so it is dropped whole.
		{strings.Repeat("a", 39) + "éé", strings.Repeat("a", 39) + "..."},
		{strings.Repeat("a", 38) + "日本", strings.Repeat("a", 38) + "..."},
		{strings.Repeat("a", 40) + "é", strings.Repeat("a", 40) + "..."},
	}
	for _, tc := range tests {
		got := FragmentError{tc.frag, reason}.Error()
		if !utf8.ValidString(got) {
			t.Errorf("FragmentError(%q).Error() = %q, not valid UTF-8", tc.frag, got)
		}
		if want := "malformed markup fragment " + strconv.Quote(tc.want) + ": bad"; got != want {
			t.Errorf("FragmentError(%q).Error() = %q, want %q", tc.frag, got, want)
		}
	}
}
