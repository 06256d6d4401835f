package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
	"carshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecase(cartSizeLimit int, maxItemQuantity int64) (*usecase.CartUsecase, *CartRepoMock, *ProductRepoMock) {
	carts := &CartRepoMock{}
	products := &ProductRepoMock{}
	uc := usecase.NewCartUsecase(carts, products, cartSizeLimit, maxItemQuantity)
	return uc, carts, products
}

func TestCartUsecase_GetCart_EmptyIsOK(t *testing.T) {
	uc, carts, products := newCartUsecase(20, 5)

	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)
	products.On("FindByIDs", mock.Anything, []int64{}).Return([]model.Product{}, nil)

	res, err := uc.GetCart(context.Background(), 1)

	assert.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
}

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	uc, carts, products := newCartUsecase(20, 5)

	products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Price: 300}, nil)
	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil).Once()
	carts.On("UpsertByUserAndProduct", mock.Anything, int64(1), int64(101), int64(2)).Return(nil)
	//upsert後の再読込
	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 11, UserID: 1, ProductID: 101, Quantity: 2},
	}, nil)
	products.On("FindByIDs", mock.Anything, []int64{101}).Return([]model.Product{
		{ID: 101, Price: 300},
	}, nil)

	res, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 2})

	assert.NoError(t, err)
	if assert.Len(t, res.Items, 1) {
		assert.Equal(t, int64(300), res.Items[0].Price) //現在価格
	}
	assert.Equal(t, int64(600), res.Total)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	uc, carts, products := newCartUsecase(20, 5)

	products.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 999, Quantity: 1})

	assertErrContains(t, err, usecase.MsgUnknownCartProduct)
	carts.AssertNotCalled(t, "UpsertByUserAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_SizeLimitOnNewProduct(t *testing.T) {
	uc, carts, products := newCartUsecase(2, 5)

	products.On("FindByID", mock.Anything, int64(103)).Return(model.Product{ID: 103, Price: 10}, nil)
	//既に2種類入っている
	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ProductID: 101, Quantity: 1},
		{ProductID: 102, Quantity: 1},
	}, nil)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 103, Quantity: 1})

	assertErrContains(t, err, usecase.MsgCartSizeLimitExceeded)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	carts.AssertNotCalled(t, "UpsertByUserAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_ExistingProductBypassesSizeLimit(t *testing.T) {
	uc, carts, products := newCartUsecase(2, 5)

	products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Price: 10}, nil)
	//上限いっぱいでも、既存商品の数量加算は通る
	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ProductID: 101, Quantity: 2},
		{ProductID: 102, Quantity: 1},
	}, nil)
	carts.On("UpsertByUserAndProduct", mock.Anything, int64(1), int64(101), int64(1)).Return(nil)
	products.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Product{
		{ID: 101, Price: 10}, {ID: 102, Price: 20},
	}, nil)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 1})

	assert.NoError(t, err)
	carts.AssertCalled(t, "UpsertByUserAndProduct", mock.Anything, int64(1), int64(101), int64(1))
}

func TestCartUsecase_AddToCart_QuantityLimitOnAccumulate(t *testing.T) {
	uc, carts, products := newCartUsecase(20, 5)

	products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Price: 10}, nil)
	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ProductID: 101, Quantity: 4},
	}, nil)

	//4+2=6 > 5
	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 2})

	assertErrContains(t, err, "quantity limit exceeded")
	carts.AssertNotCalled(t, "UpsertByUserAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_NotOwned(t *testing.T) {
	uc, carts, _ := newCartUsecase(20, 5)

	carts.On("IsOwnedByUser", mock.Anything, int64(11), int64(1)).Return(false, nil)

	_, err := uc.UpdateCartItem(context.Background(), 1, 11, usecase.UpdateCartItemInput{Quantity: 2})

	assertErrContains(t, err, usecase.MsgNotFound)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	carts.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_DeleteCartItem_Success(t *testing.T) {
	uc, carts, products := newCartUsecase(20, 5)

	carts.On("IsOwnedByUser", mock.Anything, int64(11), int64(1)).Return(true, nil)
	carts.On("DeleteByID", mock.Anything, int64(11)).Return(nil)
	carts.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)
	products.On("FindByIDs", mock.Anything, []int64{}).Return([]model.Product{}, nil)

	res, err := uc.DeleteCartItem(context.Background(), 1, 11)

	assert.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestCartUsecase_ClearCart(t *testing.T) {
	uc, carts, _ := newCartUsecase(20, 5)

	carts.On("ClearByUserID", mock.Anything, int64(1)).Return(nil)

	res, err := uc.ClearCart(context.Background(), 1)

	assert.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
	carts.AssertCalled(t, "ClearByUserID", mock.Anything, int64(1))
}
