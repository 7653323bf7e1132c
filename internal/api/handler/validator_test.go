package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name  string
		input any
		want  string
	}{
		{
			"missing required field",
			&credentialsRequest{Password: "s3cretpass"},
			"username is required",
		},
		{
			"string below min length",
			&credentialsRequest{Username: "alice", Password: "short"},
			"password must be at least 8 characters",
		},
		{
			"empty slice",
			&shareTodoRequest{UserIDs: []string{}},
			"user_ids is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.input)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("message %q must contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidator_ValidInput(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&credentialsRequest{Username: "alice", Password: "s3cretpass"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}
