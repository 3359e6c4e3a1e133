package domain

import "testing"

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"alice", true},
		{"Bob_99", true},
		{"abc", true},
		{"a_very_long_name_24_chr1", true},
		{"ab", false},
		{"a_very_long_name_25_chars", false},
		{"with space", false},
		{"dash-ed", false},
		{"Ünïcode", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.username, func(t *testing.T) {
			if got := ValidUsername(tc.username); got != tc.valid {
				t.Errorf("ValidUsername(%q) = %v, want %v", tc.username, got, tc.valid)
			}
		})
	}
}

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "$2a$10$hash", t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated id")
	}
	if !user.Enabled {
		t.Error("new user should be enabled")
	}
	if user.CreateTime != t0 {
		t.Errorf("create time = %d, want %d", user.CreateTime, t0)
	}
}

func TestNewUserRejectsInvalidUsername(t *testing.T) {
	if _, err := NewUser("no good", "$2a$10$hash", t0); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("error = %v, want %s", err, ErrCodeInvalid)
	}
}
