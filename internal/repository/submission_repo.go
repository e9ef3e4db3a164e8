package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fyb-checkin/internal/model"
)

// SubmissionRepository 提交记录数据访问接口
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id uint) (*model.Submission, error)
	GetByPhone(ctx context.Context, phone string) (*model.Submission, error)
	List(ctx context.Context) ([]model.Submission, error)
	// UpdateStatus 更新状态并返回更新后的记录
	// from 非空时仅当当前状态属于 from 才更新；未命中任何行返回 gorm.ErrRecordNotFound
	UpdateStatus(ctx context.Context, id uint, to model.SubmissionStatus, from ...model.SubmissionStatus) (*model.Submission, error)
	// Delete 硬删除并返回被删除的记录
	Delete(ctx context.Context, id uint) (*model.Submission, error)
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) GetByPhone(ctx context.Context, phone string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) List(ctx context.Context) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.WithContext(ctx).Order("id ASC").Find(&subs).Error
	return subs, err
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, id uint, to model.SubmissionStatus, from ...model.SubmissionStatus) (*model.Submission, error) {
	var subs []model.Submission

	db := r.db.WithContext(ctx).
		Model(&subs).
		Clauses(clause.Returning{}).
		Where("id = ?", id)
	if len(from) > 0 {
		states := make([]string, 0, len(from))
		for _, s := range from {
			states = append(states, string(s))
		}
		db = db.Where("status IN ?", states)
	}

	result := db.Update("status", string(to))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(subs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &subs[0], nil
}

func (r *submissionRepo) Delete(ctx context.Context, id uint) (*model.Submission, error) {
	var subs []model.Submission

	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&subs)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(subs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &subs[0], nil
}
