package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Ping(context.Background()))

	mr.Close()
	assert.Error(t, client.Ping(context.Background()))
}
