package chain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainpocket/wallet-core/internal/wallet/chain"
)

func TestFeeDataIsEIP1559(t *testing.T) {
	legacy := &chain.FeeData{GasPrice: big.NewInt(1)}
	assert.False(t, legacy.IsEIP1559())

	dynamic := &chain.FeeData{
		MaxFeePerGas:         big.NewInt(2),
		MaxPriorityFeePerGas: big.NewInt(1),
	}
	assert.True(t, dynamic.IsEIP1559())

	partial := &chain.FeeData{MaxFeePerGas: big.NewInt(2)}
	assert.False(t, partial.IsEIP1559())
}
