package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"OnlineShop/internal/catalog"
)

func TestMemLedger_ListByUser_Order(t *testing.T) {
	ctx := context.Background()
	l := catalog.NewMemLedger()

	same := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, p := range []catalog.Purchase{
		{ID: "p_c", UserID: "u_1", CreatedAt: same},
		{ID: "p_a", UserID: "u_1", CreatedAt: same},
		{ID: "p_z", UserID: "u_1", CreatedAt: same.Add(-time.Second)},
		{ID: "p_b", UserID: "u_1", CreatedAt: same},
		{ID: "p_x", UserID: "u_2", CreatedAt: same},
	} {
		require.NoError(t, l.Record(ctx, p))
	}

	for i := 0; i < 10; i++ {
		out, err := l.ListByUser(ctx, "u_1")
		require.NoError(t, err)

		ids := make([]string, 0, len(out))
		for _, p := range out {
			ids = append(ids, p.ID)
		}
		require.Equal(t, []string{"p_z", "p_a", "p_b", "p_c"}, ids)
	}

	out, err := l.ListByUser(ctx, "u_3")
	require.NoError(t, err)
	require.Empty(t, out)
}
