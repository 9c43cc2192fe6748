package solana

// Instruction is the unit of work a host hands to a program: the invoked
// program, the raw instruction data, and the accounts referenced by the
// instruction, in the order the program declares them.
type Instruction struct {
	Program  Pubkey
	Data     []byte
	Accounts []*Account
}

// NewInstruction creates a new instruction.
func NewInstruction(program Pubkey, data []byte, accounts ...*Account) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}
