package main

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/app"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/x/mixer"
	"github.com/crosslock/crosslock/x/multisig"
	"github.com/crosslock/crosslock/x/swap"
	"github.com/crosslock/crosslock/x/treasury"
	"github.com/crosslock/crosslock/x/zkproof"
)

// Server exposes the state machine over HTTP. It is the external
// collaborator the core expects: it authenticates the caller (here a
// bare X-Caller header, a stand-in for real host authentication) and
// supplies a monotonically increasing logical height, one tick per
// mutating call.
type Server struct {
	app    *app.CrossLock
	height int64
	log    logrus.FieldLogger
}

func NewServer(a *app.CrossLock, startHeight int64, log logrus.FieldLogger) *Server {
	return &Server{app: a, height: startHeight, log: log}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/swaps", s.handleCreateSwap).Methods("POST")
	r.HandleFunc("/swaps/{id}", s.handleGetSwap).Methods("GET")
	r.HandleFunc("/swaps/{id}/status", s.handleSwapStatus).Methods("GET")
	r.HandleFunc("/swaps/{id}/claim", s.handleClaimSwap).Methods("POST")
	r.HandleFunc("/swaps/{id}/refund", s.handleRefundSwap).Methods("POST")
	r.HandleFunc("/swaps/{id}/approvals", s.handleApproveSwap).Methods("POST")
	r.HandleFunc("/swaps/{id}/approvals/{signer}", s.handleGetApproval).Methods("GET")
	r.HandleFunc("/swaps/{id}/proof", s.handleSubmitProof).Methods("POST")
	r.HandleFunc("/swaps/{id}/proof", s.handleGetProof).Methods("GET")

	r.HandleFunc("/pools", s.handleCreatePool).Methods("POST")
	r.HandleFunc("/pools/{id}", s.handleGetPool).Methods("GET")
	r.HandleFunc("/pools/{id}/join", s.handleJoinPool).Methods("POST")
	r.HandleFunc("/pools/{id}/withdraw", s.handleWithdraw).Methods("POST")
	r.HandleFunc("/pools/{id}/participants/{index}", s.handleGetParticipant).Methods("GET")

	r.HandleFunc("/treasury", s.handleGetTreasury).Methods("GET")
	r.HandleFunc("/treasury/admin", s.handleUpdateAdmin).Methods("POST")
	r.HandleFunc("/treasury/withdraw", s.handleWithdrawFees).Methods("POST")

	r.HandleFunc("/version", s.handleVersion).Methods("GET")
	r.HandleFunc("/height", s.handleHeight).Methods("GET")
	r.HandleFunc("/height/advance", s.handleAdvanceHeight).Methods("POST")

	return r
}

// hexBytes renders []byte as hex in JSON, as ids and opaque payloads
// travel as hex strings on this API.
type hexBytes []byte

func (b hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *hexBytes) UnmarshalJSON(src []byte) error {
	var enc string
	if err := json.Unmarshal(src, &enc); err != nil {
		return err
	}
	raw, err := hex.DecodeString(strings.ToLower(enc))
	if err != nil {
		return err
	}
	*b = raw
	return nil
}

//---------- swap endpoints

type createSwapRequest struct {
	Participant      crosslock.Address `json:"participant"`
	Amount           uint64            `json:"amount"`
	HashLock         hexBytes          `json:"hash_lock"`
	TimeLock         int64             `json:"time_lock"`
	SwapToken        string            `json:"swap_token"`
	TargetChain      string            `json:"target_chain"`
	TargetAddress    hexBytes          `json:"target_address"`
	MultiSigRequired uint32            `json:"multi_sig_required"`
	PrivacyLevel     uint32            `json:"privacy_level"`
}

func (s *Server) handleCreateSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req createSwapRequest
	if !s.decode(w, r, &req) {
		return
	}
	msg := &swap.CreateSwapMsg{
		Initiator:        caller,
		Participant:      req.Participant,
		Amount:           req.Amount,
		HashLock:         req.HashLock,
		TimeLock:         req.TimeLock,
		SwapToken:        req.SwapToken,
		TargetChain:      req.TargetChain,
		TargetAddress:    req.TargetAddress,
		MultiSigRequired: req.MultiSigRequired,
		PrivacyLevel:     req.PrivacyLevel,
	}
	res, err := s.deliver(msg, caller)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{"swap_id": hexBytes(res.Data)})
}

func (s *Server) handleClaimSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Preimage hexBytes `json:"preimage"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &swap.ClaimSwapMsg{SwapID: swapID, Preimage: req.Preimage}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"claimed": true})
}

func (s *Server) handleRefundSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	msg := &swap.RefundSwapMsg{SwapID: swapID}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"refunded": true})
}

type swapResponse struct {
	Initiator        crosslock.Address `json:"initiator"`
	Participant      crosslock.Address `json:"participant"`
	Amount           uint64            `json:"amount"`
	HashLock         hexBytes          `json:"hash_lock"`
	TimeLock         int64             `json:"time_lock"`
	CreationHeight   int64             `json:"creation_height"`
	ExpirationHeight int64             `json:"expiration_height"`
	SwapToken        string            `json:"swap_token"`
	TargetChain      string            `json:"target_chain"`
	TargetAddress    hexBytes          `json:"target_address"`
	SwapFee          uint64            `json:"swap_fee"`
	ProtocolFee      uint64            `json:"protocol_fee"`
	MultiSigRequired uint32            `json:"multi_sig_required"`
	MultiSigProvided uint32            `json:"multi_sig_provided"`
	PrivacyLevel     uint32            `json:"privacy_level"`
	Claimed          bool              `json:"claimed"`
	Refunded         bool              `json:"refunded"`
}

func (s *Server) loadSwap(w http.ResponseWriter, swapID []byte) (*swap.Swap, bool) {
	models, err := s.app.Query("/swaps", swapID)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if len(models) == 0 {
		s.writeError(w, errors.Wrap(errors.ErrSwapNotFound, "no such swap"))
		return nil, false
	}
	var sw swap.Swap
	if err := sw.Unmarshal(models[0].Value); err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return &sw, true
}

func (s *Server) handleGetSwap(w http.ResponseWriter, r *http.Request) {
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	sw, ok := s.loadSwap(w, swapID)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, swapResponse{
		Initiator:        sw.Initiator,
		Participant:      sw.Participant,
		Amount:           sw.Amount,
		HashLock:         sw.HashLock,
		TimeLock:         sw.TimeLock,
		CreationHeight:   sw.CreationHeight,
		ExpirationHeight: sw.ExpirationHeight,
		SwapToken:        sw.SwapToken,
		TargetChain:      sw.TargetChain,
		TargetAddress:    sw.TargetAddress,
		SwapFee:          sw.SwapFee,
		ProtocolFee:      sw.ProtocolFee,
		MultiSigRequired: sw.MultiSigRequired,
		MultiSigProvided: sw.MultiSigProvided,
		PrivacyLevel:     sw.PrivacyLevel,
		Claimed:          sw.Claimed,
		Refunded:         sw.Refunded,
	})
}

func (s *Server) handleSwapStatus(w http.ResponseWriter, r *http.Request) {
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	// a missing swap degrades to the all-false status
	var sw *swap.Swap
	models, err := s.app.Query("/swaps", swapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(models) != 0 {
		var parsed swap.Swap
		if err := parsed.Unmarshal(models[0].Value); err != nil {
			s.writeError(w, err)
			return
		}
		sw = &parsed
	}
	status := swap.StatusOf(sw, atomic.LoadInt64(&s.height))
	s.writeJSON(w, http.StatusOK, status)
}

//---------- multisig endpoints

func (s *Server) handleApproveSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Signature hexBytes `json:"signature"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &multisig.ApproveSwapMsg{SwapID: swapID, Signature: req.Signature}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

func (s *Server) handleGetApproval(w http.ResponseWriter, r *http.Request) {
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	signer, err := crosslock.ParseAddress(mux.Vars(r)["signer"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	models, err := s.app.Query("/approvals", multisig.ApprovalKey(swapID, signer))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(models) == 0 {
		s.writeJSON(w, http.StatusOK, map[string]bool{"approved": false})
		return
	}
	var a multisig.Approval
	if err := a.Unmarshal(models[0].Value); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"approved": a.Approved,
		"height":   a.Height,
	})
}

//---------- zkproof endpoints

func (s *Server) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Proof hexBytes `json:"proof"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &zkproof.SubmitProofMsg{SwapID: swapID, Proof: req.Proof}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (s *Server) handleGetProof(w http.ResponseWriter, r *http.Request) {
	swapID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	models, err := s.app.Query("/proofs", swapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(models) == 0 {
		s.writeError(w, errors.Wrap(errors.ErrNotFound, "no proof submitted"))
		return
	}
	var p zkproof.Proof
	if err := p.Unmarshal(models[0].Value); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"proof":    hexBytes(p.Proof),
		"verified": p.Verified,
		"height":   p.Height,
	})
}

//---------- mixer endpoints

type createPoolRequest struct {
	MinAmount           uint64 `json:"min_amount"`
	MaxAmount           uint64 `json:"max_amount"`
	ActivationThreshold uint32 `json:"activation_threshold"`
	ExecutionDelay      int64  `json:"execution_delay"`
	ExecutionWindow     int64  `json:"execution_window"`
}

func (s *Server) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req createPoolRequest
	if !s.decode(w, r, &req) {
		return
	}
	msg := &mixer.CreatePoolMsg{
		Creator:             caller,
		MinAmount:           req.MinAmount,
		MaxAmount:           req.MaxAmount,
		ActivationThreshold: req.ActivationThreshold,
		ExecutionDelay:      req.ExecutionDelay,
		ExecutionWindow:     req.ExecutionWindow,
	}
	res, err := s.deliver(msg, caller)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{"pool_id": hexBytes(res.Data)})
}

func (s *Server) handleJoinPool(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	poolID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Amount        uint64   `json:"amount"`
		BlindedOutput hexBytes `json:"blinded_output"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &mixer.JoinPoolMsg{PoolID: poolID, Amount: req.Amount, BlindedOutput: req.BlindedOutput}
	res, err := s.deliver(msg, caller)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"participant_id": hexBytes(res.Data)})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	poolID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		ParticipantID uint32 `json:"participant_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &mixer.WithdrawMsg{PoolID: poolID, ParticipantID: req.ParticipantID}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"withdrawn": true})
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	poolID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	models, err := s.app.Query("/pools", poolID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(models) == 0 {
		s.writeError(w, errors.Wrap(errors.ErrMixerNotFound, "no such pool"))
		return
	}
	var p mixer.Pool
	if err := p.Unmarshal(models[0].Value); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"creator":              p.Creator,
		"total_amount":         p.TotalAmount,
		"participant_count":    p.ParticipantCount,
		"min_amount":           p.MinAmount,
		"max_amount":           p.MaxAmount,
		"activation_threshold": p.ActivationThreshold,
		"active":               p.Active,
		"creation_height":      p.CreationHeight,
		"execution_delay":      p.ExecutionDelay,
		"execution_window":     p.ExecutionWindow,
	})
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	poolID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	index, err := strconv.ParseUint(mux.Vars(r)["index"], 10, 32)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrInput, "malformed participant index"))
		return
	}
	models, err := s.app.Query("/participants", mixer.ParticipantKey(poolID, uint32(index)))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(models) == 0 {
		s.writeError(w, errors.Wrap(errors.ErrInvalidParticipant, "no such participant"))
		return
	}
	var p mixer.Participant
	if err := p.Unmarshal(models[0].Value); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"address":        p.Address,
		"amount":         p.Amount,
		"blinded_output": hexBytes(p.BlindedOutput),
		"joined_height":  p.JoinedHeight,
		"withdrawn":      p.Withdrawn,
	})
}

//---------- treasury endpoints

func (s *Server) handleGetTreasury(w http.ResponseWriter, r *http.Request) {
	models, err := s.app.Query("/treasury", []byte("state"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := map[string]interface{}{"admin": "", "balance": uint64(0)}
	if len(models) != 0 {
		var t treasury.Treasury
		if err := t.Unmarshal(models[0].Value); err != nil {
			s.writeError(w, err)
			return
		}
		if len(t.Admin) != 0 {
			resp["admin"] = t.Admin.String()
		}
		resp["balance"] = t.Balance
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req struct {
		NewAdmin crosslock.Address `json:"new_admin"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &treasury.UpdateAdminMsg{NewAdmin: req.NewAdmin}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"admin": req.NewAdmin.String()})
}

func (s *Server) handleWithdrawFees(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	msg := &treasury.WithdrawFeesMsg{Amount: req.Amount}
	if _, err := s.deliver(msg, caller); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"withdrawn": true})
}

//---------- meta endpoints

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": crosslock.Version})
}

func (s *Server) handleHeight(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]int64{"height": atomic.LoadInt64(&s.height)})
}

func (s *Server) handleAdvanceHeight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Blocks int64 `json:"blocks"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Blocks <= 0 {
		s.writeError(w, errors.Wrap(errors.ErrInput, "blocks must be positive"))
		return
	}
	height := atomic.AddInt64(&s.height, req.Blocks)
	s.writeJSON(w, http.StatusOK, map[string]int64{"height": height})
}

//---------- plumbing

// deliver executes one mutating call at the next logical height.
func (s *Server) deliver(msg crosslock.Msg, caller crosslock.Address) (*crosslock.DeliverResult, error) {
	height := atomic.AddInt64(&s.height, 1)
	return s.app.Deliver(height, app.NewTx(msg), caller)
}

// caller authenticates the request from the X-Caller header.
func (s *Server) caller(w http.ResponseWriter, r *http.Request) (crosslock.Address, bool) {
	addr, err := crosslock.ParseAddress(r.Header.Get("X-Caller"))
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing or malformed X-Caller header"})
		return nil, false
	}
	return addr, true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) ([]byte, bool) {
	raw, err := hex.DecodeString(strings.ToLower(mux.Vars(r)[name]))
	if err != nil {
		s.writeError(w, errors.Wrapf(errors.ErrInput, "malformed %s", name))
		return nil, false
	}
	return raw, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrInput, err.Error()))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Warn("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusConflict
	switch {
	case errors.ErrUnauthorized.Is(err):
		code = http.StatusForbidden
	case errors.ErrNotFound.Is(err), errors.ErrSwapNotFound.Is(err), errors.ErrMixerNotFound.Is(err):
		code = http.StatusNotFound
	case errors.ErrInput.Is(err), errors.ErrEmpty.Is(err):
		code = http.StatusBadRequest
	}
	s.writeJSON(w, code, map[string]interface{}{
		"code":  errors.Code(err),
		"error": err.Error(),
	})
}
