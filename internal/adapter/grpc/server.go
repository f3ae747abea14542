package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/investment"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/report"
)

// Server implements the PerformanceService gRPC server
type Server struct {
	ReportService     *report.ReportService
	InvestmentService *investment.InvestmentService
}

// NewServer creates a new gRPC server instance
func NewServer(reportService *report.ReportService, investmentService *investment.InvestmentService) *Server {
	return &Server{
		ReportService:     reportService,
		InvestmentService: investmentService,
	}
}

type reportRequest struct {
	PortfolioID   string `json:"portfolio_id"`
	EndDate       string `json:"end_date"`
	IncludeAssets bool   `json:"include_assets"`
}

type createAssetRequest struct {
	PortfolioID string `json:"portfolio_id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
}

type recordRequest struct {
	AssetID      string           `json:"asset_id"`
	Contribution decimal.Decimal  `json:"contribution"`
	Value        *decimal.Decimal `json:"value"`
	Date         string           `json:"date"`
}

type assetRequest struct {
	AssetID string `json:"asset_id"`
}

type assetResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type recordResponse struct {
	EntryID string          `json:"entry_id"`
	Capital decimal.Decimal `json:"capital"`
	Value   decimal.Decimal `json:"value"`
	Profit  decimal.Decimal `json:"profit"`
	Date    string          `json:"date"`
}

type profitResponse struct {
	AssetID string          `json:"asset_id"`
	Profit  decimal.Decimal `json:"profit"`
}

// GetPerformance handles the GetPerformance RPC
func (s *Server) GetPerformance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reportRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	portfolioID, err := parseID("portfolio_id", in.PortfolioID)
	if err != nil {
		return nil, err
	}

	result, err := s.ReportService.GetPerformance(ctx, report.PerformanceInput{
		PortfolioID:   portfolioID,
		EndDate:       in.EndDate,
		IncludeAssets: in.IncludeAssets,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return encode(result)
}

// GetHistory handles the GetHistory RPC
func (s *Server) GetHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reportRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	portfolioID, err := parseID("portfolio_id", in.PortfolioID)
	if err != nil {
		return nil, err
	}

	result, err := s.ReportService.GetHistory(ctx, report.HistoryInput{
		PortfolioID:   portfolioID,
		EndDate:       in.EndDate,
		IncludeAssets: in.IncludeAssets,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return encode(result)
}

// CreateAsset handles the CreateAsset RPC
func (s *Server) CreateAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createAssetRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	portfolioID, err := parseID("portfolio_id", in.PortfolioID)
	if err != nil {
		return nil, err
	}

	asset, err := s.InvestmentService.CreateAsset(ctx, investment.CreateAssetInput{
		PortfolioID: portfolioID,
		Name:        in.Name,
		Group:       in.Group,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return encode(toAssetResponse(asset))
}

// ListAssets handles the ListAssets RPC
func (s *Server) ListAssets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reportRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	portfolioID, err := parseID("portfolio_id", in.PortfolioID)
	if err != nil {
		return nil, err
	}

	assets, err := s.InvestmentService.ListAssets(ctx, portfolioID)
	if err != nil {
		return nil, mapError(err)
	}

	// Convert domain assets to response objects
	out := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, toAssetResponse(asset))
	}

	return encode(map[string]interface{}{"assets": out})
}

// RecordBalanceChange handles the RecordBalanceChange RPC
func (s *Server) RecordBalanceChange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in recordRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	assetID, err := parseID("asset_id", in.AssetID)
	if err != nil {
		return nil, err
	}

	if in.Value == nil {
		return nil, status.Error(codes.InvalidArgument, "value is required")
	}

	change, err := s.InvestmentService.RecordBalanceChange(ctx, investment.RecordInput{
		AssetID:      assetID,
		Contribution: in.Contribution,
		Value:        *in.Value,
		Date:         in.Date,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return encode(recordResponse{
		EntryID: change.ID.String(),
		Capital: change.Capital,
		Value:   change.Value,
		Profit:  change.Profit(),
		Date:    change.Date.String(),
	})
}

// GetProfit handles the GetProfit RPC
func (s *Server) GetProfit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in assetRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	assetID, err := parseID("asset_id", in.AssetID)
	if err != nil {
		return nil, err
	}

	profit, err := s.InvestmentService.CalculateProfit(ctx, assetID)
	if err != nil {
		return nil, mapError(err)
	}

	return encode(profitResponse{AssetID: assetID.String(), Profit: profit})
}

func toAssetResponse(asset *domain.Asset) assetResponse {
	return assetResponse{
		ID:    asset.ID.String(),
		Name:  asset.Name,
		Group: asset.Group,
	}
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return id, nil
}

// decode maps a Struct request onto a tagged Go struct through its JSON form
func decode(req *structpb.Struct, dest interface{}) error {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

// encode converts a response to a Struct through its JSON form
func encode(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Errors coming from outside the domain (drivers, cache) only carry a message
	if strings.Contains(errorMsg, "not found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
