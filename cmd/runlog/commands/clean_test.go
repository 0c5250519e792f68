package commands

import "testing"

func TestResolveSchedule(t *testing.T) {
	cases := []struct {
		name        string
		flagValue   string
		once        bool
		configValue string
		want        string
	}{
		{"no schedule anywhere", "", false, "", ""},
		{"config schedule applies", "", false, "0 3 * * *", "0 3 * * *"},
		{"flag overrides config", "@daily", false, "0 3 * * *", "@daily"},
		{"once forces single sweep", "", true, "0 3 * * *", ""},
		{"once beats explicit flag", "@daily", true, "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveSchedule(tc.flagValue, tc.once, tc.configValue)
			if got != tc.want {
				t.Errorf("resolveSchedule(%q, %v, %q) = %q, want %q",
					tc.flagValue, tc.once, tc.configValue, got, tc.want)
			}
		})
	}
}
