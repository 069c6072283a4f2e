package ai

import "testing"

func TestStripFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n[{\"task\":\"x\"}]\n```", `[{"task":"x"}]`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", "  [1,2,3]  ", "[1,2,3]"},
		{"fence with preamble", "Here you go:\n```json\n{}\n```\nEnjoy!", "{}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripFence(tc.in); got != tc.want {
				t.Errorf("stripFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
