package imaging

import (
	"errors"
	"testing"

	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/stretchr/testify/require"
)

func TestValidateDimensionsRejectsZero(t *testing.T) {
	cases := []struct{ w, h int }{
		{0, 0},
		{0, 10},
		{10, 0},
	}
	for _, c := range cases {
		err := validateDimensions(c.w, c.h)
		require.Error(t, err)
		require.True(t, errors.Is(err, model.ErrImageLoad))
	}
}

func TestValidateDimensionsAcceptsPositive(t *testing.T) {
	require.NoError(t, validateDimensions(1, 1))
	require.NoError(t, validateDimensions(4, 600))
}
