package treasury

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

const (
	pathUpdateAdmin  = "treasury/update_admin"
	pathWithdrawFees = "treasury/withdraw_fees"
)

var _ crosslock.Msg = (*UpdateAdminMsg)(nil)
var _ crosslock.Msg = (*WithdrawFeesMsg)(nil)

// UpdateAdminMsg reassigns the administrator identity. Only the current
// administrator may deliver it.
type UpdateAdminMsg struct {
	NewAdmin crosslock.Address
}

func (UpdateAdminMsg) Path() string {
	return pathUpdateAdmin
}

func (m *UpdateAdminMsg) Validate() error {
	return errors.Wrap(m.NewAdmin.Validate(), "new admin")
}

func (m *UpdateAdminMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateAdminMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// WithdrawFeesMsg debits the accumulated fee balance. Only the current
// administrator may deliver it.
type WithdrawFeesMsg struct {
	Amount uint64
}

func (WithdrawFeesMsg) Path() string {
	return pathWithdrawFees
}

func (m *WithdrawFeesMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInput, "zero withdrawal")
	}
	return nil
}

func (m *WithdrawFeesMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *WithdrawFeesMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
