package api

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBoolUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    FlexBool
		wantErr bool
	}{
		{input: `true`, want: true},
		{input: `false`, want: false},
		{input: `"true"`, want: true},
		{input: `"FALSE"`, want: false},
		{input: `null`, want: false},
		{input: `"yes"`, wantErr: true},
		{input: `1`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var b FlexBool
			err := json.Unmarshal([]byte(tc.input), &b)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
		})
	}
}

func TestCreateProductRequestDefaultsStock(t *testing.T) {
	price := 9.99
	in := CreateProductRequest{Name: "Widget", Price: &price}.toInput()
	assert.Equal(t, 0, in.Stock)
	assert.Equal(t, 9.99, in.Price)
}

func TestUpdateOrderRequestParsesProductID(t *testing.T) {
	raw := "65A1F0C2B3D4E5F60718293A"
	patch, err := UpdateOrderRequest{ProductID: &raw}.toPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.ProductID)
	assert.Equal(t, domain.ProductID("65a1f0c2b3d4e5f60718293a"), *patch.ProductID)

	bad := "nope"
	_, err = UpdateOrderRequest{ProductID: &bad}.toPatch()
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateTaskRequestToPatch(t *testing.T) {
	status := "in_progress"
	patch := UpdateTaskRequest{Status: &status}.toPatch()
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.TaskStatusInProgress, *patch.Status)
	assert.Nil(t, patch.Priority)
}
