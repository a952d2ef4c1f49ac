package app

import (
	amino "github.com/tendermint/go-amino"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/x/mixer"
	"github.com/crosslock/crosslock/x/multisig"
	"github.com/crosslock/crosslock/x/swap"
	"github.com/crosslock/crosslock/x/treasury"
	"github.com/crosslock/crosslock/x/zkproof"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*crosslock.Msg)(nil), nil)
	cdc.RegisterConcrete(&swap.CreateSwapMsg{}, "crosslock/swap/create", nil)
	cdc.RegisterConcrete(&swap.ClaimSwapMsg{}, "crosslock/swap/claim", nil)
	cdc.RegisterConcrete(&swap.RefundSwapMsg{}, "crosslock/swap/refund", nil)
	cdc.RegisterConcrete(&multisig.ApproveSwapMsg{}, "crosslock/multisig/approve", nil)
	cdc.RegisterConcrete(&zkproof.SubmitProofMsg{}, "crosslock/zkproof/submit", nil)
	cdc.RegisterConcrete(&mixer.CreatePoolMsg{}, "crosslock/mixer/create", nil)
	cdc.RegisterConcrete(&mixer.JoinPoolMsg{}, "crosslock/mixer/join", nil)
	cdc.RegisterConcrete(&mixer.WithdrawMsg{}, "crosslock/mixer/withdraw", nil)
	cdc.RegisterConcrete(&treasury.UpdateAdminMsg{}, "crosslock/treasury/update_admin", nil)
	cdc.RegisterConcrete(&treasury.WithdrawFeesMsg{}, "crosslock/treasury/withdraw_fees", nil)
}
