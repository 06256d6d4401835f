package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
	"carshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestStatsUsecase_GetSalesStatistics_DenseMonthlyBuckets(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)

	//該当0件でも全バケットが0で出る
	orders.On("ListForStats", mock.Anything, mock.Anything).Return([]model.Order{}, nil)

	out, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		DateFrom:  timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		DateTill:  timePtr(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
		Pitch:     usecase.AxlePitchMonth,
		CountMode: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"2023-01": 0,
		"2023-02": 0,
		"2023-03": 0,
	}, out.Counts)
	assert.Nil(t, out.Orders)
}

func TestStatsUsecase_GetSalesStatistics_CountsPerBucket(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)

	orders.On("ListForStats", mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, CreatedAt: time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2023, 2, 14, 9, 0, 0, 0, time.UTC)},
		{ID: 3, CreatedAt: time.Date(2023, 2, 20, 18, 0, 0, 0, time.UTC)},
	}, nil)

	out, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		DateFrom:  timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		DateTill:  timePtr(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
		Pitch:     usecase.AxlePitchMonth,
		CountMode: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"2023-01": 1,
		"2023-02": 2,
		"2023-03": 0,
	}, out.Counts)
}

func TestStatsUsecase_GetSalesStatistics_DayAndYearKeys(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)
	orders.On("ListForStats", mock.Anything, mock.Anything).Return([]model.Order{}, nil)

	//DAY＝YYYY-MM-DD
	out, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		DateFrom:  timePtr(time.Date(2023, 2, 27, 0, 0, 0, 0, time.UTC)),
		DateTill:  timePtr(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
		Pitch:     usecase.AxlePitchDay,
		CountMode: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"2023-02-27": 0,
		"2023-02-28": 0,
		"2023-03-01": 0,
	}, out.Counts)

	//YEAR＝YYYY
	out, err = uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		DateFrom:  timePtr(time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)),
		DateTill:  timePtr(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		Pitch:     usecase.AxlePitchYear,
		CountMode: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"2022": 0,
		"2023": 0,
	}, out.Counts)
}

func TestStatsUsecase_GetSalesStatistics_StatusZeroFilterPassesThrough(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)

	//Status=0（WAITING_DISCOUNT_APPROVAL）は「未指定」ではなく有効値
	orders.On("ListForStats", mock.Anything, mock.MatchedBy(func(f repo.SalesStatsFilter) bool {
		return f.Status != nil && *f.Status == model.OrderStatusWaitingDiscountApproval &&
			f.BrandID != nil && *f.BrandID == 7
	})).Return([]model.Order{}, nil)

	status := model.OrderStatusWaitingDiscountApproval
	brandID := int64(7)
	_, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		DateFrom:  timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		DateTill:  timePtr(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)),
		Status:    &status,
		BrandID:   &brandID,
		CountMode: true,
	})

	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestStatsUsecase_GetSalesStatistics_ListMode(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)

	orders.On("ListForStats", mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, UserID: 3, OrderNo: 0, CreatedAt: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 2, UserID: 4, OrderNo: 1, CreatedAt: time.Date(2023, 2, 5, 0, 0, 0, 0, time.UTC)},
	}, nil)

	out, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		DateFrom: timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		DateTill: timePtr(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
	})

	assert.NoError(t, err)
	assert.Nil(t, out.Counts)
	if assert.Len(t, out.Orders, 2) {
		//リポジトリの並び（created_at昇順）を保つ
		assert.Equal(t, int64(1), out.Orders[0].ID)
		assert.Equal(t, "1", out.Orders[0].IDStr)
		assert.Equal(t, "3", out.Orders[0].UserIDStr)
		assert.Equal(t, int64(2), out.Orders[1].ID)
	}
}

func TestStatsUsecase_GetSalesStatistics_InvalidPitch(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)

	_, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{
		Pitch: usecase.AxlePitch("WEEK"),
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	orders.AssertNotCalled(t, "ListForStats", mock.Anything, mock.Anything)
}

func TestStatsUsecase_GetSalesStatistics_StoreErrorIsPropagated(t *testing.T) {
	orders := &OrderRepoMock{}
	uc := usecase.NewStatsUsecase(orders)

	storeErr := errors.New("storage offline")
	orders.On("ListForStats", mock.Anything, mock.Anything).Return(nil, storeErr)

	_, err := uc.GetSalesStatistics(context.Background(), usecase.SalesStatsInput{CountMode: true})

	//ストア起因のエラーは包まずそのまま
	assert.ErrorIs(t, err, storeErr)
	_, ok := usecase.AsHTTPError(err)
	assert.False(t, ok)
}
