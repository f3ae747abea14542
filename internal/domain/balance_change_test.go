package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simaogato/wealthtrack-backend/internal/date"
)

func TestAssetBalanceChange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		change  AssetBalanceChange
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid change",
			change: AssetBalanceChange{
				AssetID: uuid.New(),
				Capital: decimal.NewFromInt(1000),
				Value:   decimal.NewFromInt(1100),
				Date:    date.MustParse("2021-12-31"),
			},
		},
		{
			name: "Zero value is allowed",
			change: AssetBalanceChange{
				AssetID: uuid.New(),
				Capital: decimal.NewFromInt(1000),
				Value:   decimal.Zero,
				Date:    date.MustParse("2021-12-31"),
			},
		},
		{
			name: "Missing asset should fail",
			change: AssetBalanceChange{
				Value: decimal.NewFromInt(1100),
				Date:  date.MustParse("2021-12-31"),
			},
			wantErr: true,
			errMsg:  "must reference an asset",
		},
		{
			name: "Missing date should fail",
			change: AssetBalanceChange{
				AssetID: uuid.New(),
				Value:   decimal.NewFromInt(1100),
			},
			wantErr: true,
			errMsg:  "must have a date",
		},
		{
			name: "Negative value should fail",
			change: AssetBalanceChange{
				AssetID: uuid.New(),
				Value:   decimal.NewFromInt(-1),
				Date:    date.MustParse("2021-12-31"),
			},
			wantErr: true,
			errMsg:  "market value must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssetBalanceChange_Profit(t *testing.T) {
	change := AssetBalanceChange{
		Capital: decimal.RequireFromString("1000.004"),
		Value:   decimal.RequireFromString("1210.01"),
	}
	assert.True(t, change.Profit().Equal(decimal.RequireFromString("210.01")), change.Profit().String())

	loss := AssetBalanceChange{
		Capital: decimal.NewFromInt(500),
		Value:   decimal.NewFromInt(450),
	}
	assert.True(t, loss.Profit().Equal(decimal.NewFromInt(-50)))
}
