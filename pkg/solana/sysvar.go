package solana

// SystemProgramID is the address of the system program, which owns all
// accounts that have not yet been assigned to a program.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var SystemProgramID = MustPubkeyFromBase58("11111111111111111111111111111111")

// SysvarRentID points to the system variable "Rent".
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
var SysvarRentID = MustPubkeyFromBase58("SysvarRent111111111111111111111111111111111")

// SysvarClockID points to the system variable "Clock".
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/clock.rs#L10
var SysvarClockID = MustPubkeyFromBase58("SysvarC1ock11111111111111111111111111111111")

// BPFLoaderUpgradeableID is the address of the upgradeable BPF loader,
// which owns deployed upgradeable program accounts.
//
// https://explorer.solana.com/address/BPFLoaderUpgradeab1e11111111111111111111111
var BPFLoaderUpgradeableID = MustPubkeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
