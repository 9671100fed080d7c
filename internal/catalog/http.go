package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"OnlineShop/internal/auth"
	"OnlineShop/internal/shop"
	"OnlineShop/pkg/kit"
)

type Server struct {
	Shop    *shop.Controller
	Ledger  Ledger
	Log     *zap.Logger
	metrics *shopMetrics
	now     func() time.Time
}

type addComputerReq struct {
	Type         string              `json:"type"`
	ID           int                 `json:"id"`
	Manufacturer string              `json:"manufacturer"`
	Model        string              `json:"model"`
	Price        decimal.Decimal     `json:"price"`
	Performance  decimal.NullDecimal `json:"performance"`
}

type partReq struct {
	ID           int             `json:"id"`
	Type         string          `json:"type"`
	Manufacturer string          `json:"manufacturer"`
	Model        string          `json:"model"`
	Price        decimal.Decimal `json:"price"`
	Performance  decimal.Decimal `json:"performance"`
}

type componentReq struct {
	partReq
	Generation int `json:"generation"`
}

type peripheralReq struct {
	partReq
	ConnectionType string `json:"connection_type"`
}

func (p partReq) spec(computerID int) shop.PartSpec {
	return shop.PartSpec{
		ComputerID:   computerID,
		ID:           p.ID,
		Variant:      p.Type,
		Manufacturer: p.Manufacturer,
		Model:        p.Model,
		Price:        p.Price,
		Performance:  p.Performance,
	}
}

type bestReq struct {
	Budget decimal.Decimal `json:"budget"`
}

type confirmationResp struct {
	shop.Confirmation
	Message string `json:"message"`
}

type removalResp[T any] struct {
	confirmationResp
	Removed T `json:"removed"`
}

func confirm(c shop.Confirmation) confirmationResp {
	return confirmationResp{Confirmation: c, Message: c.String()}
}

func (s *Server) listComputers(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.ListComputers())
}

func (s *Server) getComputer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.computerID(w, r)
	if !ok {
		return
	}
	snap, err := s.Shop.GetComputerData(id)
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, snap)
}

func (s *Server) addComputer(w http.ResponseWriter, r *http.Request) {
	var req addComputerReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	c, err := s.Shop.AddComputer(shop.ComputerSpec{
		Variant:      req.Type,
		ID:           req.ID,
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
		Price:        req.Price,
		Performance:  req.Performance,
	})
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, confirm(c))
}

func (s *Server) addComponent(w http.ResponseWriter, r *http.Request) {
	computerID, ok := s.computerID(w, r)
	if !ok {
		return
	}
	var req componentReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	c, err := s.Shop.AddComponent(shop.ComponentSpec{PartSpec: req.spec(computerID), Generation: req.Generation})
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, confirm(c))
}

func (s *Server) removeComponent(w http.ResponseWriter, r *http.Request) {
	computerID, ok := s.computerID(w, r)
	if !ok {
		return
	}

	res, err := s.Shop.RemoveComponent(chi.URLParam(r, "variant"), computerID)
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, removalResp[shop.ComponentView]{
		confirmationResp: confirm(res.Confirmation),
		Removed:          res.Component.View(),
	})
}

func (s *Server) addPeripheral(w http.ResponseWriter, r *http.Request) {
	computerID, ok := s.computerID(w, r)
	if !ok {
		return
	}
	var req peripheralReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	c, err := s.Shop.AddPeripheral(shop.PeripheralSpec{PartSpec: req.spec(computerID), ConnectionType: req.ConnectionType})
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, confirm(c))
}

func (s *Server) removePeripheral(w http.ResponseWriter, r *http.Request) {
	computerID, ok := s.computerID(w, r)
	if !ok {
		return
	}

	res, err := s.Shop.RemovePeripheral(chi.URLParam(r, "variant"), computerID)
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, removalResp[shop.PeripheralView]{
		confirmationResp: confirm(res.Confirmation),
		Removed:          res.Peripheral.View(),
	})
}

func (s *Server) buyComputer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.computerID(w, r)
	if !ok {
		return
	}
	snap, err := s.Shop.BuyComputer(id)
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	s.recordSale(w, r, snap)
}

func (s *Server) buyBest(w http.ResponseWriter, r *http.Request) {
	var req bestReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	snap, err := s.Shop.BuyBestComputer(req.Budget)
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	s.recordSale(w, r, snap)
}

func (s *Server) recordSale(w http.ResponseWriter, r *http.Request, snap shop.ComputerSnapshot) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	p := Purchase{
		ID:        "p_" + uuid.NewString(),
		UserID:    claims.UserID,
		Total:     snap.Price,
		Computer:  snap,
		CreatedAt: s.clock().UTC(),
	}
	s.metrics.observeSale(snap)

	// The computer has already left the catalog; a ledger failure is logged
	// and reported but cannot undo the sale.
	if err := s.Ledger.Record(r.Context(), p); err != nil {
		s.Log.Error("record purchase failed",
			zap.Error(err),
			zap.Int("computer_id", snap.ID),
			zap.String("user_id", p.UserID),
		)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", map[string]any{"computer_id": snap.ID})
		return
	}

	s.Log.Info("computer sold",
		zap.String("purchase_id", p.ID),
		zap.Int("computer_id", snap.ID),
		zap.String("total", snap.Price.StringFixed(2)),
	)
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) getPurchase(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	p, found, err := s.Ledger.Get(r.Context(), id)
	if err != nil {
		s.Log.Error("ledger get failed", zap.Error(err), zap.String("purchase_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if p.UserID != claims.UserID && claims.Role != auth.RoleStaff {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listPurchases(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	out, err := s.Ledger.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		s.Log.Error("ledger list failed", zap.Error(err), zap.String("user_id", claims.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Ledger.Ping(ctx); err != nil {
		s.Log.Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) computerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad computer id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func (s *Server) writeShopError(w http.ResponseWriter, r *http.Request, err error) {
	details := map[string]any{}
	var (
		idErr      *shop.IDError
		variantErr *shop.VariantError
		budgetErr  *shop.BudgetError
		invalidErr *shop.ValidationError
	)
	switch {
	case errors.As(err, &idErr):
		details["kind"] = idErr.Entity
		details["id"] = idErr.ID
	case errors.As(err, &variantErr):
		details["kind"] = variantErr.Entity
		details["variant"] = variantErr.Variant
		if variantErr.ComputerID != 0 {
			details["computer_id"] = variantErr.ComputerID
		}
	case errors.As(err, &budgetErr):
		details["budget"] = budgetErr.Budget
	case errors.As(err, &invalidErr):
		details["field"] = invalidErr.Field
	}

	switch {
	case errors.Is(err, shop.ErrUnknownComputer),
		errors.Is(err, shop.ErrNoMatchingComponent),
		errors.Is(err, shop.ErrNoMatchingPeripheral):
		kit.WriteError(w, r, http.StatusNotFound, err.Error(), details)
	case errors.Is(err, shop.ErrDuplicateID),
		errors.Is(err, shop.ErrDuplicateAttachment):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), details)
	case errors.Is(err, shop.ErrUnknownVariant),
		errors.Is(err, shop.ErrInvalidProduct),
		errors.Is(err, shop.ErrInvalidBudget):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), details)
	case errors.Is(err, shop.ErrBudgetTooLow):
		kit.WriteError(w, r, http.StatusUnprocessableEntity, err.Error(), details)
	default:
		s.Log.Error("shop operation failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func (s *Server) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
