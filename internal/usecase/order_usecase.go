package usecase

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
)

// OrderCreatedEvent はWebSocket通知のペイロード。
type OrderCreatedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   int64     `json:"order_id"`
	OrderNo   int64     `json:"order_no"`
	UserID    int64     `json:"user_id"`
	TotalSum  int64     `json:"total_sum"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// 注文作成の通知先。main.goでWebSocketハブをこれに適合させて注入する。
type OrderNotifier interface {
	NotifyOrderCreated(ev OrderCreatedEvent)
}

// イベントID生成の約束（mainでuuidを注入）
type IDGenerator interface {
	NewID() string
}

type OrderUsecase struct {
	tx            repo.TransactionManager
	auditRepo     repo.AuditLogRepository
	notifier      OrderNotifier // nil可（通知なし構成）
	idGen         IDGenerator
	cartSizeLimit int
}

func NewOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, notifier OrderNotifier, idGen IDGenerator, cartSizeLimit int) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		auditRepo:     auditRepo,
		notifier:      notifier,
		idGen:         idGen,
		cartSizeLimit: cartSizeLimit,
	}
}

// 注文の1明細（商品と数量だけ。価格は確定時に読む）
type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Brand     string `json:"brand,omitempty"`
	CarModel  string `json:"model,omitempty"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	IDStr       string            `json:"id_str"`
	UserID      int64             `json:"user_id"`
	UserIDStr   string            `json:"user_id_str"`
	OrderNo     int64             `json:"order_no"`
	Status      string            `json:"status"`
	TotalAmount int64             `json:"total_amount"`
	TotalSum    int64             `json:"total_sum"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`
}

// resolveOrderItems は明細の商品を一括で引いて、スナップショット価格つきの
// 注文明細と合計金額を作る。insertとupdateで共通。
// 存在しない商品が1つでも混ざっていたら全体を失敗させる（黙ってskipしない）。
func resolveOrderItems(ctx context.Context, products repo.ProductRepository, lines []OrderLine) ([]model.OrderItem, int64, error) {
	// 重複なしの商品ID
	distinct := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			distinct = append(distinct, l.ProductID)
		}
	}

	found, err := products.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	byID := make(map[int64]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	if len(byID) < len(distinct) {
		return nil, 0, NewHTTPError(http.StatusBadRequest, MsgUnknownCartProduct)
	}

	items := make([]model.OrderItem, 0, len(lines))
	var totalSum int64 = 0
	for _, l := range lines {
		p := byID[l.ProductID]
		items = append(items, model.OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: p.Price,
		})
		totalSum += l.Quantity * p.Price
	}
	return items, totalSum, nil
}

// CreateOrder はカートの中身から注文を作る。
// サイズ検査→価格解決→合計計算→採番→注文insert→カートclear を
// 1トランザクションで行う（検査で落ちたら何も書かない）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput
	var ev OrderCreatedEvent

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cartItems, err := r.Carts().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		//サイズ上限（超えたら一切書き込まない）
		if len(cartItems) > u.cartSizeLimit {
			return NewHTTPError(http.StatusBadRequest, MsgCartSizeLimitExceeded)
		}

		lines := make([]OrderLine, 0, len(cartItems))
		for _, ci := range cartItems {
			lines = append(lines, OrderLine{ProductID: ci.ProductID, Quantity: ci.Quantity})
		}

		items, totalSum, err := resolveOrderItems(ctx, r.Products(), lines)
		if err != nil {
			return err
		}

		//採番は既存注文数。countとinsertは同一トランザクション内
		count, err := r.Orders().CountAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		now := time.Now()
		order := model.Order{
			UserID:      userID,
			OrderNo:     count,
			Status:      model.OrderStatusWaitingDiscountApproval,
			TotalAmount: int64(len(items)),
			TotalSum:    totalSum,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		//注文に取り込んだのでカートは空にする
		if err := r.Carts().ClearByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		order.ID = orderID
		order.Items = items
		out = toOrderOutput(order)

		ev = OrderCreatedEvent{
			OrderID:   orderID,
			OrderNo:   order.OrderNo,
			UserID:    userID,
			TotalSum:  totalSum,
			Status:    order.Status.String(),
			CreatedAt: now,
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	//通知はcommit後（失敗した注文を流さない）
	if u.notifier != nil {
		if u.idGen != nil {
			ev.EventID = u.idGen.NewID()
		}
		u.notifier.NotifyOrderCreated(ev)
	}

	return out, nil
}

type UpdateOrderInput struct {
	// nilなら明細は触らない（合計の再計算もしない）
	Products *[]OrderLine
	// nilならステータス据え置き
	Status *model.OrderStatus
}

// UpdateOrder は明細の差し替えと/またはステータス変更。
// 明細が来たときだけ同じヘルパーで合計を再計算する。
// 管理者操作なので監査ログを同じトランザクションで残す。
func (u *OrderUsecase) UpdateOrder(ctx context.Context, actorAdminUserID int64, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if actorAdminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status != nil && !in.Status.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.Products != nil {
		for _, l := range *in.Products {
			if l.ProductID <= 0 {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
			}
			if l.Quantity < 1 {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID, false)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		//監査用に変更前を控えておく
		beforeStatus := o.Status.String()
		beforeSum := o.TotalSum

		if in.Products != nil {
			lines := *in.Products
			if len(lines) > u.cartSizeLimit {
				return NewHTTPError(http.StatusBadRequest, MsgCartSizeLimitExceeded)
			}

			items, totalSum, err := resolveOrderItems(ctx, r.Products(), lines)
			if err != nil {
				return err
			}

			//明細を差し替えて合計を新しいリストで再計算
			if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, MsgDBError)
			}
			if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
				return NewHTTPError(http.StatusInternalServerError, MsgDBError)
			}

			o.TotalAmount = int64(len(items))
			o.TotalSum = totalSum
		}

		if in.Status != nil {
			o.Status = *in.Status
		}

		if err := r.Orders().Update(ctx, o); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, MsgNotFound)
			}
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		//監査ログ（変更前後のステータスと合計）
		beforeJSON := `{"status":"` + beforeStatus + `","total_sum":` + strconv.FormatInt(beforeSum, 10) + `}`
		afterJSON := `{"status":"` + o.Status.String() + `","total_sum":` + strconv.FormatInt(o.TotalSum, 10) + `}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}

		//返却はhydrate済みで
		updated, err := r.Orders().FindByID(ctx, orderID, true)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}
		out = toOrderOutput(updated)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// GetMyOrderDetail は自分の注文の詳細。hydrateはopt-in。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64, hydrate bool) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID, hydrate)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		out = toOrderOutput(o)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, hydrate bool) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID, hydrate)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, MsgDBError)
		}
		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		oi := OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		if it.Product != nil {
			if it.Product.Brand != nil {
				oi.Brand = it.Product.Brand.Name
			}
			if it.Product.CarModel != nil {
				oi.CarModel = it.Product.CarModel.Name
			}
		}
		items = append(items, oi)
	}

	return OrderOutput{
		ID:          o.ID,
		IDStr:       strconv.FormatInt(o.ID, 10),
		UserID:      o.UserID,
		UserIDStr:   strconv.FormatInt(o.UserID, 10),
		OrderNo:     o.OrderNo,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
		TotalSum:    o.TotalSum,
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}
