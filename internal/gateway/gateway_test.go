package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vehicle-search-service/internal/core/domain"
	"vehicle-search-service/internal/core/usecase"
)

// fakeVehicleStorage serves canned inventory and applies brand and price
// criteria in memory.
type fakeVehicleStorage struct {
	vehicles []domain.Vehicle
	err      error
}

func (f *fakeVehicleStorage) Search(_ context.Context, filter domain.VehicleFilter, cursor *domain.PageCursor, limit int) ([]domain.SearchHit, error) {
	if f.err != nil {
		return nil, f.err
	}
	hits := make([]domain.SearchHit, 0, limit)
	for _, v := range f.vehicles {
		if !matchesBrand(v, filter.Brands) {
			continue
		}
		if filter.PriceMin != nil && v.Price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && v.Price > *filter.PriceMax {
			continue
		}
		if cursor != nil && v.ID <= cursor.ID {
			continue
		}
		hits = append(hits, domain.SearchHit{Vehicle: v})
		if len(hits) == limit {
			break
		}
	}
	return hits, nil
}

func matchesBrand(v domain.Vehicle, brands []string) bool {
	if len(brands) == 0 {
		return true
	}
	for _, b := range brands {
		if domain.FoldText(v.Brand) == b {
			return true
		}
	}
	return false
}

type fakeFacetRepository struct {
	brands       []string
	modelsByCall func(brands []string) []string
	doors        []int
	priceRange   *domain.RangeResult
	err          error
}

func (f *fakeFacetRepository) DistinctBrands(context.Context) ([]string, error) {
	return f.brands, f.err
}

func (f *fakeFacetRepository) DistinctModels(_ context.Context, brands []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.modelsByCall == nil {
		return nil, nil
	}
	return f.modelsByCall(brands), nil
}

func (f *fakeFacetRepository) DistinctFuelTypes(context.Context) ([]string, error) {
	return []string{"Diesel", "Flex", "Gasolina"}, f.err
}

func (f *fakeFacetRepository) DistinctColors(context.Context) ([]string, error) {
	return []string{"Branco", "Preto"}, f.err
}

func (f *fakeFacetRepository) DistinctTransmissions(context.Context) ([]string, error) {
	return []string{"Automática", "Manual"}, f.err
}

func (f *fakeFacetRepository) DistinctDoors(context.Context) ([]int, error) {
	return f.doors, f.err
}

func (f *fakeFacetRepository) YearRange(context.Context) (*domain.RangeResult, error) {
	return &domain.RangeResult{Min: 2010, Max: 2025}, f.err
}

func (f *fakeFacetRepository) PriceRange(context.Context) (*domain.RangeResult, error) {
	return f.priceRange, f.err
}

func (f *fakeFacetRepository) MileageRange(context.Context) (*domain.RangeResult, error) {
	return nil, f.err
}

type GatewayTestSuite struct {
	suite.Suite

	storage *fakeVehicleStorage
	facets  *fakeFacetRepository
	gateway *Gateway
}

func (s *GatewayTestSuite) SetupTest() {
	s.storage = &fakeVehicleStorage{
		vehicles: []domain.Vehicle{
			{ID: "v-01", Brand: "Volkswagen", Model: "Gol", YearManufacture: 2021, Price: 62000, CreatedAt: time.Now()},
			{ID: "v-02", Brand: "Volkswagen", Model: "Polo", YearManufacture: 2022, Price: 95000, CreatedAt: time.Now()},
			{ID: "v-03", Brand: "Fiat", Model: "Uno", YearManufacture: 2019, Price: 41000, CreatedAt: time.Now()},
		},
	}
	s.facets = &fakeFacetRepository{
		brands: []string{"Fiat", "Volkswagen"},
		doors:  []int{2, 4},
		modelsByCall: func(brands []string) []string {
			if len(brands) == 0 {
				return []string{"Gol", "Polo", "Uno"}
			}
			return []string{"Gol", "Polo"}
		},
		priceRange: &domain.RangeResult{Min: 41000, Max: 95000},
	}
	s.gateway = NewGateway(
		usecase.NewSearchVehiclesUseCase(s.storage),
		usecase.NewListDistinctUseCase(s.facets),
		usecase.NewGetRangeUseCase(s.facets),
	)
}

func (s *GatewayTestSuite) dispatch(operation string, args map[string]any) CallResponse {
	return s.gateway.Dispatch(context.Background(), CallRequest{Operation: operation, Arguments: args})
}

func (s *GatewayTestSuite) TestUnknownOperation() {
	resp := s.dispatch("drop_table", nil)

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeUnknownOperation, resp.Error.Code)
	s.Require().Contains(resp.Error.Message, "drop_table")
	s.Require().Nil(resp.Result)
}

func (s *GatewayTestSuite) TestSearchRecords() {
	resp := s.dispatch(OpSearchRecords, map[string]any{
		"brand":     "Volkswagen",
		"price_max": 80000.0,
	})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(SearchRecordsResult)
	s.Require().True(ok)
	s.Require().Len(result.Records, 1)
	s.Require().Equal("Gol", result.Records[0].Model)
	s.Require().Empty(result.NextPageToken)
}

func (s *GatewayTestSuite) TestSearchRecordsEmptyMatchIsSuccess() {
	resp := s.dispatch(OpSearchRecords, map[string]any{"brand": "Tesla"})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(SearchRecordsResult)
	s.Require().True(ok)
	s.Require().Empty(result.Records)
	s.Require().Empty(result.NextPageToken)
}

func (s *GatewayTestSuite) TestSearchRecordsUnknownArgument() {
	resp := s.dispatch(OpSearchRecords, map[string]any{"horsepower": 200.0})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
	s.Require().Contains(resp.Error.Message, "horsepower")
}

func (s *GatewayTestSuite) TestSearchRecordsInvertedRange() {
	resp := s.dispatch(OpSearchRecords, map[string]any{
		"price_min": 90000.0,
		"price_max": 50000.0,
	})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func (s *GatewayTestSuite) TestSearchRecordsNegativePageSize() {
	resp := s.dispatch(OpSearchRecords, map[string]any{"page_size": -1.0})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func (s *GatewayTestSuite) TestSearchRecordsBadPageToken() {
	resp := s.dispatch(OpSearchRecords, map[string]any{"page_token": "@@@"})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidPageToken, resp.Error.Code)
	s.Require().Contains(resp.Error.Message, "restart pagination")
}

func (s *GatewayTestSuite) TestSearchRecordsTimeout() {
	s.storage.err = &domain.StorageError{Err: context.DeadlineExceeded, Timeout: true}

	resp := s.dispatch(OpSearchRecords, nil)

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeTimeout, resp.Error.Code)
}

func (s *GatewayTestSuite) TestSearchRecordsStorageFaultIsSanitized() {
	s.storage.err = &domain.StorageError{Err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}

	resp := s.dispatch(OpSearchRecords, nil)

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeStorageUnavailable, resp.Error.Code)
	s.Require().NotContains(resp.Error.Message, "10.0.0.5")
}

func (s *GatewayTestSuite) TestSearchRecordsUnclassifiedErrorIsSanitized() {
	s.storage.err = errors.New("scan failed on column 7")

	resp := s.dispatch(OpSearchRecords, nil)

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeStorageUnavailable, resp.Error.Code)
	s.Require().NotContains(resp.Error.Message, "column")
}

func (s *GatewayTestSuite) TestListDistinctBrands() {
	resp := s.dispatch(OpListDistinct, map[string]any{"field": "brand"})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(ListDistinctResult)
	s.Require().True(ok)
	s.Require().Equal([]any{"Fiat", "Volkswagen"}, result.Values)
}

func (s *GatewayTestSuite) TestListDistinctModelsNarrowedByBrand() {
	resp := s.dispatch(OpListDistinct, map[string]any{
		"field":  "model",
		"brands": []any{"Volkswagen"},
	})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(ListDistinctResult)
	s.Require().True(ok)
	s.Require().Equal([]any{"Gol", "Polo"}, result.Values)
}

func (s *GatewayTestSuite) TestListDistinctDoors() {
	resp := s.dispatch(OpListDistinct, map[string]any{"field": "doors"})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(ListDistinctResult)
	s.Require().True(ok)
	s.Require().Equal([]any{2, 4}, result.Values)
}

func (s *GatewayTestSuite) TestListDistinctMissingField() {
	resp := s.dispatch(OpListDistinct, map[string]any{})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func (s *GatewayTestSuite) TestListDistinctUnsupportedField() {
	resp := s.dispatch(OpListDistinct, map[string]any{"field": "price"})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func (s *GatewayTestSuite) TestListDistinctBrandsOnlyForModels() {
	resp := s.dispatch(OpListDistinct, map[string]any{
		"field":  "color",
		"brands": []any{"Fiat"},
	})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func (s *GatewayTestSuite) TestGetRange() {
	resp := s.dispatch(OpGetRange, map[string]any{"field": "price"})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(RangeResult)
	s.Require().True(ok)
	s.Require().Equal(41000.0, result.Min)
	s.Require().Equal(95000.0, result.Max)
}

func (s *GatewayTestSuite) TestGetRangeEmptyStore() {
	resp := s.dispatch(OpGetRange, map[string]any{"field": "mileage"})

	s.Require().Nil(resp.Error)
	result, ok := resp.Result.(EmptyRangeResult)
	s.Require().True(ok)
	s.Require().True(result.Empty)
}

func (s *GatewayTestSuite) TestGetRangeUnsupportedField() {
	resp := s.dispatch(OpGetRange, map[string]any{"field": "doors"})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func (s *GatewayTestSuite) TestGetRangeUnknownArgument() {
	resp := s.dispatch(OpGetRange, map[string]any{"field": "price", "brands": []any{"Fiat"}})

	s.Require().NotNil(resp.Error)
	s.Require().Equal(CodeInvalidArgument, resp.Error.Code)
}

func TestGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func TestOperations(t *testing.T) {
	g := NewGateway(
		usecase.NewSearchVehiclesUseCase(&fakeVehicleStorage{}),
		usecase.NewListDistinctUseCase(&fakeFacetRepository{}),
		usecase.NewGetRangeUseCase(&fakeFacetRepository{}),
	)
	require.ElementsMatch(t,
		[]string{OpSearchRecords, OpListDistinct, OpGetRange},
		g.Operations())
}
