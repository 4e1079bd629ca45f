package wallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// transfer(address,uint256)
var transferMethodID = common.Hex2Bytes("a9059cbb")

const paddedWordLength = 32

// erc20TransferData encodes the transfer(to, amount) call with the amount in
// the token's base units.
func erc20TransferData(to common.Address, amount *big.Int) []byte {
	data := make([]byte, 0, len(transferMethodID)+2*paddedWordLength)
	data = append(data, transferMethodID...)
	data = append(data, common.LeftPadBytes(to.Bytes(), paddedWordLength)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), paddedWordLength)...)

	return data
}
