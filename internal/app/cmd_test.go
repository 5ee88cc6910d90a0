package app

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"no args defaults to serve", nil, CommandServe},
		{"serve", []string{"serve"}, CommandServe},
		{"migrate", []string{"migrate"}, CommandMigrate},
		{"healthcheck", []string{"healthcheck"}, CommandHealthcheck},
		{"unknown defaults to serve", []string{"bogus"}, CommandServe},
		{"extra args are ignored", []string{"migrate", "--verbose"}, CommandMigrate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseCommand(tc.args); got != tc.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", tc.args, got, tc.want)
			}
		})
	}
}
