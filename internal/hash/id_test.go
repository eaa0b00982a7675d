package hash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestSlot(t *testing.T) {
	t.Run("within range", func(t *testing.T) {
		for i := range 1000 {
			slot := Slot(fmt.Sprintf("field_%d", i), 64)
			require.GreaterOrEqual(t, slot, 0)
			require.Less(t, slot, 64)
		}
	})

	t.Run("truncates the hash", func(t *testing.T) {
		require.Equal(t, int(ID("test")&63), Slot("test", 64))
	})

	t.Run("stable", func(t *testing.T) {
		require.Equal(t, Slot("name", 64), Slot("name", 64))
	})
}
