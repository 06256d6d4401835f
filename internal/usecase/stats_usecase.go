package usecase

import (
	"context"
	"net/http"
	"time"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
)

// AxlePitch は売上統計の集計粒度。
type AxlePitch string

const (
	AxlePitchDay   AxlePitch = "DAY"
	AxlePitchMonth AxlePitch = "MONTH"
	AxlePitchYear  AxlePitch = "YEAR"
)

func (p AxlePitch) valid() bool {
	switch p {
	case AxlePitchDay, AxlePitchMonth, AxlePitchYear:
		return true
	}
	return false
}

// 粒度ごとのバケットキー（DAY=YYYY-MM-DD / MONTH=YYYY-MM / YEAR=YYYY）
func (p AxlePitch) bucketKey(t time.Time) string {
	switch p {
	case AxlePitchDay:
		return t.Format("2006-01-02")
	case AxlePitchYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// 次のバケットの先頭へ進める
func (p AxlePitch) advance(t time.Time) time.Time {
	switch p {
	case AxlePitchDay:
		return t.AddDate(0, 0, 1)
	case AxlePitchYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

type SalesStatsInput struct {
	DateFrom  *time.Time         // nilなら1年前
	DateTill  *time.Time         // nilなら現在
	Status    *model.OrderStatus // ポインタ（0も有効な絞り込み値）
	BrandID   *int64
	ModelID   *int64
	Pitch     AxlePitch // 空ならMONTH
	CountMode bool
}

// CountMode に応じてどちらか一方だけ入る
type SalesStatsOutput struct {
	Orders []OrderOutput
	Counts map[string]int64
}

type StatsUsecase struct {
	orderRepo repo.OrderRepository
}

func NewStatsUsecase(orderRepo repo.OrderRepository) *StatsUsecase {
	return &StatsUsecase{orderRepo: orderRepo}
}

// GetSalesStatistics は期間・フィルタに合致する注文を返すか（CountMode=false）、
// 粒度ごとの件数の密な系列を返す（CountMode=true）。
// 件数系列は該当0件のバケットも必ず含む。キーはISO形式なので昇順=時系列順。
func (u *StatsUsecase) GetSalesStatistics(ctx context.Context, in SalesStatsInput) (SalesStatsOutput, error) {
	now := time.Now()

	from := now.AddDate(-1, 0, 0)
	if in.DateFrom != nil {
		from = *in.DateFrom
	}
	till := now
	if in.DateTill != nil {
		till = *in.DateTill
	}

	pitch := in.Pitch
	if pitch == "" {
		pitch = AxlePitchMonth
	}
	if !pitch.valid() {
		return SalesStatsOutput{}, NewHTTPError(http.StatusBadRequest, "invalid axle_pitch")
	}
	if in.Status != nil && !in.Status.Valid() {
		return SalesStatsOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, err := u.orderRepo.ListForStats(ctx, repo.SalesStatsFilter{
		From:    from,
		Till:    till,
		Status:  in.Status,
		BrandID: in.BrandID,
		ModelID: in.ModelID,
	})
	if err != nil {
		//ストア起因のエラーはそのまま返す（包まない・リトライしない）
		return SalesStatsOutput{}, err
	}

	if !in.CountMode {
		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return SalesStatsOutput{Orders: outs}, nil
	}

	//まず範囲内の全バケットを0で初期化してから数える
	counts := make(map[string]int64)
	for cursor := from; !cursor.After(till); cursor = pitch.advance(cursor) {
		counts[pitch.bucketKey(cursor)] = 0
	}
	for _, o := range orders {
		key := pitch.bucketKey(o.CreatedAt)
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}

	return SalesStatsOutput{Counts: counts}, nil
}
