package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

const uidTag = "required,max=64,uid"

// UIDRequest is the body of operations that only need the acting user
type UIDRequest struct {
	UID string `json:"uid" validate:"required,max=64,uid"`
}

// RegisterRequest creates a farm for uid
type RegisterRequest struct {
	UID  string `json:"uid" validate:"required,max=64,uid"`
	Name string `json:"name" validate:"max=256"`
}

// RenameRequest changes the display name
type RenameRequest struct {
	UID  string `json:"uid" validate:"required,max=64,uid"`
	Name string `json:"name" validate:"required,max=256"`
}

// BuySeedRequest buys Count seeds of Name. Count defaults to 1.
type BuySeedRequest struct {
	UID   string `json:"uid" validate:"required,max=64,uid"`
	Name  string `json:"name" validate:"required,max=64"`
	Count *int   `json:"count,omitempty"`
}

// SowRequest plants Count plots with Name. Count defaults to 1; 0 plants as many as possible.
type SowRequest struct {
	UID   string `json:"uid" validate:"required,max=64,uid"`
	Name  string `json:"name" validate:"required,max=64"`
	Count *int   `json:"count,omitempty"`
}

// SellRequest sells crops. An empty Name sells everything; a zero Count sells all of Name.
type SellRequest struct {
	UID   string `json:"uid" validate:"required,max=64,uid"`
	Name  string `json:"name" validate:"max=64"`
	Count int    `json:"count"`
}

// StealRequest raids the farm of TargetUID
type StealRequest struct {
	UID       string `json:"uid" validate:"required,max=64,uid"`
	TargetUID string `json:"target_uid" validate:"required,max=64,uid"`
}

// ConfirmRequest answers a pending reclaim or upgrade
type ConfirmRequest struct {
	UID    string `json:"uid" validate:"required,max=64,uid"`
	Token  string `json:"token" validate:"required,max=64"`
	Accept bool   `json:"accept"`
}

// FarmHandler exposes farm.Manager to the chat dispatcher
type FarmHandler struct {
	mgr farm.Manager
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(mgr farm.Manager) *FarmHandler {
	return &FarmHandler{mgr: mgr}
}

// writeResult renders a manager result. Outcomes ride inside a 200; errors are storage faults.
func writeResult(w http.ResponseWriter, r *http.Request, op string, res interface{ OK() bool }, err error) {
	log := logger.FromContext(r.Context())
	if err != nil {
		log.Error(LogMsgOperationFailed, "operation", op, "error", err)
		status, msg := mapServiceError(err)
		respondError(w, status, msg)
		return
	}
	log.Debug(LogMsgOperationOutcome, "operation", op, "ok", res.OK())
	respondJSON(w, http.StatusOK, res)
}

func countOrDefault(count *int, def int) int {
	if count == nil {
		return def
	}
	return *count
}

// Register handles farm registration
// @Summary Register a farmer
// @Description Creates the account, initial currency and starting plots. Registering twice yields already_registered.
// @Tags account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register request"
// @Success 200 {object} farm.RegisterResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/register [post]
func (h *FarmHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgRequestReceived, "operation", farm.OpRegister, "uid", req.UID)

	res, err := h.mgr.Register(r.Context(), req.UID, req.Name)
	writeResult(w, r, farm.OpRegister, res, err)
}

// Rename handles display name changes
// @Summary Rename a farmer
// @Tags account
// @Accept json
// @Produce json
// @Param request body RenameRequest true "Rename request"
// @Success 200 {object} farm.RenameResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/rename [post]
func (h *FarmHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Rename"); err != nil {
		return
	}
	res, err := h.mgr.Rename(r.Context(), req.UID, req.Name)
	writeResult(w, r, farm.OpRename, res, err)
}

// Status returns the renderable farm snapshot
// @Summary Farm status
// @Description Plots with derived growth stage, maturity and withering, plus inventory counts
// @Tags account
// @Produce json
// @Param uid query string true "User ID"
// @Success 200 {object} farm.StatusResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/status [get]
func (h *FarmHandler) Status(w http.ResponseWriter, r *http.Request) {
	uid, ok := GetUIDParam(r, w)
	if !ok {
		return
	}
	res, err := h.mgr.Status(r.Context(), uid)
	writeResult(w, r, farm.OpStatus, res, err)
}

// Balance returns currency, experience and level
// @Summary Balance
// @Tags account
// @Produce json
// @Param uid query string true "User ID"
// @Success 200 {object} farm.BalanceResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/balance [get]
func (h *FarmHandler) Balance(w http.ResponseWriter, r *http.Request) {
	uid, ok := GetUIDParam(r, w)
	if !ok {
		return
	}
	res, err := h.mgr.Balance(r.Context(), uid)
	writeResult(w, r, farm.OpBalance, res, err)
}

// Seeds lists the seed inventory
// @Summary Seed inventory
// @Tags inventory
// @Produce json
// @Param uid query string true "User ID"
// @Success 200 {object} farm.InventoryResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/seeds [get]
func (h *FarmHandler) Seeds(w http.ResponseWriter, r *http.Request) {
	uid, ok := GetUIDParam(r, w)
	if !ok {
		return
	}
	res, err := h.mgr.SeedInventory(r.Context(), uid)
	writeResult(w, r, farm.OpSeedInventory, res, err)
}

// Crops lists the harvested crop inventory
// @Summary Crop inventory
// @Tags inventory
// @Produce json
// @Param uid query string true "User ID"
// @Success 200 {object} farm.InventoryResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/crops [get]
func (h *FarmHandler) Crops(w http.ResponseWriter, r *http.Request) {
	uid, ok := GetUIDParam(r, w)
	if !ok {
		return
	}
	res, err := h.mgr.CropInventory(r.Context(), uid)
	writeResult(w, r, farm.OpCropInventory, res, err)
}

// Shop lists one page of the seed shop
// @Summary Seed shop
// @Tags shop
// @Produce json
// @Param filter query string false "Substring of crop ID, name or alias"
// @Param page query int false "1-based page" default(1)
// @Success 200 {object} farm.ShopResult
// @Failure 400 {object} ErrorResponse
// @Router /farm/shop [get]
func (h *FarmHandler) Shop(w http.ResponseWriter, r *http.Request) {
	page, ok := GetOptionalIntQueryParam(r, w, "page", 1)
	if !ok {
		return
	}
	filter := GetOptionalQueryParam(r, "filter", "")
	res, err := h.mgr.ShopList(r.Context(), filter, page)
	writeResult(w, r, farm.OpShopList, res, err)
}

// BuySeed handles seed purchases
// @Summary Buy seeds
// @Description All-or-nothing: an unaffordable purchase leaves the balance unchanged
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuySeedRequest true "Buy request"
// @Success 200 {object} farm.BuyResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/shop/buy [post]
func (h *FarmHandler) BuySeed(w http.ResponseWriter, r *http.Request) {
	var req BuySeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy seed"); err != nil {
		return
	}
	res, err := h.mgr.BuySeed(r.Context(), req.UID, req.Name, countOrDefault(req.Count, 1))
	writeResult(w, r, farm.OpBuySeed, res, err)
}

// Sell handles crop sales
// @Summary Sell crops
// @Tags shop
// @Accept json
// @Produce json
// @Param request body SellRequest true "Sell request"
// @Success 200 {object} farm.SellResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/sell [post]
func (h *FarmHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell"); err != nil {
		return
	}
	res, err := h.mgr.SellCrop(r.Context(), req.UID, req.Name, req.Count)
	writeResult(w, r, farm.OpSellCrop, res, err)
}

// Sow handles planting
// @Summary Sow seeds
// @Tags field
// @Accept json
// @Produce json
// @Param request body SowRequest true "Sow request"
// @Success 200 {object} farm.SowResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/sow [post]
func (h *FarmHandler) Sow(w http.ResponseWriter, r *http.Request) {
	var req SowRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sow"); err != nil {
		return
	}
	res, err := h.mgr.Sow(r.Context(), req.UID, req.Name, countOrDefault(req.Count, 1))
	writeResult(w, r, farm.OpSow, res, err)
}

// Harvest collects every mature plot
// @Summary Harvest
// @Tags field
// @Accept json
// @Produce json
// @Param request body UIDRequest true "Harvest request"
// @Success 200 {object} farm.HarvestResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/harvest [post]
func (h *FarmHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	var req UIDRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}
	res, err := h.mgr.Harvest(r.Context(), req.UID)
	writeResult(w, r, farm.OpHarvest, res, err)
}

// Eradicate clears every planted plot
// @Summary Eradicate
// @Tags field
// @Accept json
// @Produce json
// @Param request body UIDRequest true "Eradicate request"
// @Success 200 {object} farm.EradicateResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/eradicate [post]
func (h *FarmHandler) Eradicate(w http.ResponseWriter, r *http.Request) {
	var req UIDRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Eradicate"); err != nil {
		return
	}
	res, err := h.mgr.Eradicate(r.Context(), req.UID)
	writeResult(w, r, farm.OpEradicate, res, err)
}

// Till prepares reclaimed land
// @Summary Till barren plots
// @Tags field
// @Accept json
// @Produce json
// @Param request body UIDRequest true "Till request"
// @Success 200 {object} farm.TillResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/till [post]
func (h *FarmHandler) Till(w http.ResponseWriter, r *http.Request) {
	var req UIDRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Till"); err != nil {
		return
	}
	res, err := h.mgr.Till(r.Context(), req.UID)
	writeResult(w, r, farm.OpTill, res, err)
}

// Steal raids another farm
// @Summary Steal crops
// @Tags field
// @Accept json
// @Produce json
// @Param request body StealRequest true "Steal request"
// @Success 200 {object} farm.StealResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/steal [post]
func (h *FarmHandler) Steal(w http.ResponseWriter, r *http.Request) {
	var req StealRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Steal"); err != nil {
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgRequestReceived, "operation", farm.OpSteal, "uid", req.UID, "target", req.TargetUID)

	res, err := h.mgr.Steal(r.Context(), req.UID, req.TargetUID)
	writeResult(w, r, farm.OpSteal, res, err)
}

// SignIn claims the daily reward
// @Summary Daily sign-in
// @Tags account
// @Accept json
// @Produce json
// @Param request body UIDRequest true "Sign-in request"
// @Success 200 {object} farm.SignInResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/signin [post]
func (h *FarmHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req UIDRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sign in"); err != nil {
		return
	}
	res, err := h.mgr.SignIn(r.Context(), req.UID)
	writeResult(w, r, farm.OpSignIn, res, err)
}

// ReclaimCondition quotes the next plot and issues a confirmation token
// @Summary Reclaim quote
// @Tags land
// @Produce json
// @Param uid query string true "User ID"
// @Success 200 {object} farm.ReclaimConditionResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/reclaim/condition [get]
func (h *FarmHandler) ReclaimCondition(w http.ResponseWriter, r *http.Request) {
	uid, ok := GetUIDParam(r, w)
	if !ok {
		return
	}
	res, err := h.mgr.ReclaimCondition(r.Context(), uid)
	writeResult(w, r, farm.OpReclaimCondition, res, err)
}

// UpgradeCondition quotes the next level of a plot and issues a confirmation token
// @Summary Upgrade quote
// @Tags land
// @Produce json
// @Param uid query string true "User ID"
// @Param plot query int true "0-based plot index"
// @Success 200 {object} farm.UpgradeConditionResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/upgrade/condition [get]
func (h *FarmHandler) UpgradeCondition(w http.ResponseWriter, r *http.Request) {
	uid, ok := GetUIDParam(r, w)
	if !ok {
		return
	}
	raw, ok := GetQueryParam(r, w, "plot")
	if !ok {
		return
	}
	plotIndex, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "plot"))
		return
	}
	res, err := h.mgr.UpgradeCondition(r.Context(), uid, plotIndex)
	writeResult(w, r, farm.OpUpgradeCondition, res, err)
}

// Confirm returns the commit phase handler for op
// @Summary Confirm a reclaim or upgrade
// @Description accept=false declines; an unknown or expired token times out
// @Tags land
// @Accept json
// @Produce json
// @Param request body ConfirmRequest true "Confirm request"
// @Success 200 {object} farm.ConfirmResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/reclaim/confirm [post]
// @Router /farm/upgrade/confirm [post]
func (h *FarmHandler) Confirm(op domain.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Confirm "+string(op)); err != nil {
			return
		}
		res, err := h.mgr.Confirm(r.Context(), req.UID, op, req.Token, req.Accept)
		writeResult(w, r, farm.OpConfirm, res, err)
	}
}
