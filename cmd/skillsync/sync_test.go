package main

import (
	"testing"

	"github.com/arthur-debert/skillsync/pkg/config"
	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRules(t *testing.T) {
	cfg := &config.Config{Rules: []config.Rule{
		{Pattern: "vault-*", Disposition: "external-vault"},
		{Pattern: "*", Disposition: "global"},
	}}

	rules, err := classifyRules(cfg)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, types.DispositionExternalVault, rules[0].Disposition)
	assert.Equal(t, types.DispositionGlobal, rules[1].Disposition)
}

func TestClassifyRules_UnknownDisposition(t *testing.T) {
	cfg := &config.Config{Rules: []config.Rule{
		{Pattern: "*", Disposition: "banish"},
	}}

	_, err := classifyRules(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"publish_conflict", errors.New(errors.ErrPublishConflict, "rejected"), 2},
		{"vcs_unavailable", errors.New(errors.ErrVCSUnavailable, "offline"), 2},
		{"vcs_command", errors.New(errors.ErrVCSCommand, "bad ref"), 2},
		{"path_occupied", errors.New(errors.ErrPathOccupied, "taken"), 1},
		{"config", errors.New(errors.ErrConfigLoad, "missing"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}
