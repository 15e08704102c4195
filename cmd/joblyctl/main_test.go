package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("joblyctl"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, kctx
}

func TestParseToken(t *testing.T) {
	cli, kctx := parse(t, "token", "a1", "--admin")
	assert.Equal(t, "token <username>", kctx.Command())
	assert.Equal(t, "a1", cli.Token.Username)
	assert.True(t, cli.Token.Admin)
}

func TestParseSeedDefaults(t *testing.T) {
	t.Setenv("JOBLY_ADMIN_PASSWORD", "from-env")
	cli, kctx := parse(t, "seed")
	assert.Equal(t, "seed", kctx.Command())
	assert.Equal(t, "from-env", cli.Seed.AdminPassword)
}
