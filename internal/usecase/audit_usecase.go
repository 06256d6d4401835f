package usecase

import (
	"context"
	"net/http"
	"time"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
)

// AuditUsecase は管理者操作ログの参照。
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	ActorUserID *int64
	Action      *string
	ResourceID  *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

func (u *AuditUsecase) ListAuditLogs(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	filter := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		CreatedFrom: in.CreatedFrom,
		CreatedTo:   in.CreatedTo,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.Action != nil {
		a := model.AuditAction(*in.Action)
		switch a {
		case model.AuditActionUpdateOrder,
			model.AuditActionCreateProduct,
			model.AuditActionUpdateProduct,
			model.AuditActionDeleteProduct:
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
		filter.Action = &a
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return logs, nil
}
