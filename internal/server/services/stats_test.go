package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Usage_EmptyAccount(t *testing.T) {
	env := newDirectoryEnv()
	svc := NewStatsService(nil, env.manager, noopLogger{})

	stats, err := svc.Usage(context.Background(), "acc1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.TotalUsedMB)
	assert.Equal(t, int64(0), stats.FileCount)
	assert.Empty(t, stats.ChartData)
}

func TestStatsService_Usage(t *testing.T) {
	ctx := context.Background()
	env := newDirectoryEnv()
	svc := NewStatsService(nil, env.manager, noopLogger{})

	mb := func(n int) []byte { return make([]byte, n*1024*1024) }
	_, err := env.svc.PlaceFile(ctx, "acc1", nil, "photo.jpg", mb(2))
	require.NoError(t, err)
	_, err = env.svc.PlaceFile(ctx, "acc1", nil, "photo2.png", mb(1))
	require.NoError(t, err)
	_, err = env.svc.PlaceFile(ctx, "acc1", nil, "report.pdf", mb(3))
	require.NoError(t, err)
	_, err = env.svc.PlaceFile(ctx, "acc1", nil, "data.bin", mb(1))
	require.NoError(t, err)
	// another account's files stay out of the aggregate
	_, err = env.svc.PlaceFile(ctx, "acc2", nil, "other.jpg", mb(5))
	require.NoError(t, err)

	stats, err := svc.Usage(ctx, "acc1")
	require.NoError(t, err)
	assert.Equal(t, float64(7), stats.TotalUsedMB)
	assert.Equal(t, int64(4), stats.FileCount)

	byName := make(map[string]float64)
	var order []string
	for _, bucket := range stats.ChartData {
		byName[bucket.Name] = bucket.Value
		order = append(order, bucket.Name)
	}
	assert.Equal(t, []string{"Images", "Documents", "Others"}, order)
	assert.Equal(t, float64(3), byName["Images"])
	assert.Equal(t, float64(3), byName["Documents"])
	assert.Equal(t, float64(1), byName["Others"])
}

func TestStatsService_Usage_ReflectsDeletes(t *testing.T) {
	ctx := context.Background()
	env := newDirectoryEnv()
	svc := NewStatsService(nil, env.manager, noopLogger{})

	file, err := env.svc.PlaceFile(ctx, "acc1", nil, "a.txt", make([]byte, 1024*1024))
	require.NoError(t, err)

	stats, err := svc.Usage(ctx, "acc1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FileCount)

	require.NoError(t, env.svc.DeleteFile(ctx, "acc1", file.ID))

	stats, err = svc.Usage(ctx, "acc1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.FileCount)
	assert.Equal(t, float64(0), stats.TotalUsedMB)
}

func TestToMB_Rounding(t *testing.T) {
	// 1.5 MiB
	assert.Equal(t, 1.5, toMB(1572864))
	// 10 bytes rounds to 0.00
	assert.Equal(t, float64(0), toMB(10))
	// 1/3 MiB rounds to 0.33
	assert.Equal(t, 0.33, toMB(349525))
}
