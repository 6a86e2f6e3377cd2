package summarizer

import "testing"

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Nvidia shipped new racks.  ", "Nvidia shipped new racks."},
		{"echoed label", "Summary: Nvidia shipped new racks.", "Nvidia shipped new racks."},
		{"bold label", "**Summary:** Nvidia shipped new racks.", "Nvidia shipped new racks."},
		{"note line", "Note: this is generated.\nNvidia shipped new racks.", "Nvidia shipped new racks."},
		{"inline note", "Nvidia shipped (Note: details may vary) new racks.", "Nvidia shipped  new racks."},
		{"blank runs", "First.\n\n\n\nSecond.", "First.\n\nSecond."},
		{"only note", "Note: nothing to add.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanReply(tt.in); got != tt.want {
				t.Errorf("cleanReply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
