package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationCheck(t *testing.T) {
	valid := Registration{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "secret12!",
		ConfirmPassword: "secret12!",
	}

	tests := []struct {
		name    string
		mutate  func(r *Registration)
		wantMsg string
	}{
		{name: "valid", mutate: func(r *Registration) {}},
		{
			name:    "username too long wins over missing fields",
			mutate:  func(r *Registration) { r.Username = strings.Repeat("a", 21); r.Email = "" },
			wantMsg: "Username must be no more than 20 characters",
		},
		{
			name:    "missing email",
			mutate:  func(r *Registration) { r.Email = "" },
			wantMsg: "All fields are required",
		},
		{
			name:    "weak password",
			mutate:  func(r *Registration) { r.Password = "secret1!"; r.ConfirmPassword = "secret1!" },
			wantMsg: "Password must be at least 8 characters long, contain at least 2 numbers, and one special character",
		},
		{
			name:    "mismatch",
			mutate:  func(r *Registration) { r.ConfirmPassword = "secret13!" },
			wantMsg: "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Check()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *Error
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abcde12!", true},
		{"pass12word!", true},
		{"1a2b3c4d@", false},
		{"a1bcdef2!", false},
		{"short1!", false},
		{"abcdefg1!", false},
		{"abcdefg12", false},
		{"12345678!", false},
		{"abc 12345!", false},
		{"abcdé12!x", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrongPassword(tt.password), tt.password)
	}
}

func TestTaskText(t *testing.T) {
	assert.NoError(t, TaskText("write report"))
	err := TaskText("   ")
	require.Error(t, err)
	assert.Equal(t, "Please enter a task before adding", err.Error())
}

func TestJournalTitle(t *testing.T) {
	assert.NoError(t, JournalTitle("Monday"))
	assert.NoError(t, JournalTitle(strings.Repeat("x", 20)))
	assert.Error(t, JournalTitle(""))
	assert.Error(t, JournalTitle("  "))
	assert.Error(t, JournalTitle(strings.Repeat("x", 21)))
}

func TestTimerDuration(t *testing.T) {
	total, err := TimerDuration(10, 30)
	require.NoError(t, err)
	assert.Equal(t, 630, total)

	total, err = TimerDuration(180, 0)
	require.NoError(t, err)
	assert.Equal(t, 10800, total)

	for _, in := range [][2]int{{0, 0}, {181, 0}, {180, 1}, {-1, 30}, {5, -1}} {
		_, err := TimerDuration(in[0], in[1])
		assert.Error(t, err, "%v", in)
	}
}
