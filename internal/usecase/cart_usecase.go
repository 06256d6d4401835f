package usecase

import (
	"context"
	"net/http"

	repo "carshop/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartRepo        repo.CartRepository
	productRepo     repo.ProductRepository
	cartSizeLimit   int
	maxItemQuantity int64
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	cartSizeLimit int,
	maxItemQuantity int64,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		cartSizeLimit:   cartSizeLimit,
		maxItemQuantity: maxItemQuantity,
	}
}

type CartItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（空でも200で空リスト）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック
	_, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, MsgUnknownCartProduct)
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	var existingQty int64 = 0
	exists := false
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			exists = true
			break
		}
	}

	//新しい商品なら種類数の上限チェック
	if !exists && len(items) >= u.cartSizeLimit {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, MsgCartSizeLimitExceeded)
	}

	//1商品あたりの数量上限
	newQty := existingQty + in.Quantity
	if newQty > u.maxItemQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "quantity limit exceeded")
	}

	if err := u.cartRepo.UpsertByUserAndProduct(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return u.buildCartResponse(ctx, userID)
}

// 数量変更（所有チェック＋上限チェック）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if in.Quantity > u.maxItemQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "quantity limit exceeded")
	}

	owned, err := u.cartRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}

	if err := u.cartRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return u.buildCartResponse(ctx, userID)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}

	if err := u.cartRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return u.buildCartResponse(ctx, userID)
}

// カート全消し
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.cartRepo.ClearByUserID(ctx, userID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return CartResponse{Items: []CartItemResponse{}, Total: 0}, nil
}

// 現在価格で合計を出して返す（カート表示は常に現在価格）
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	priceByID := make(map[int64]int64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	res := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, it := range items {
		price := priceByID[it.ProductID]
		res.Items = append(res.Items, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Price:     price,
			Quantity:  it.Quantity,
		})
		res.Total += price * it.Quantity
	}
	return res, nil
}
