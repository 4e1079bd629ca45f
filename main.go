package main

import "github.com/chainpocket/wallet-core/cmd"

func main() {
	cmd.Execute()
}
