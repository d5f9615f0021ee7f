package service

import (
	"errors"
	"strings"
	"time"

	"eyewear/models"

	"gorm.io/gorm"
)

// 推荐（收藏）相关错误
var (
	// ErrNotSalesperson 操作者未在销售表中登记
	ErrNotSalesperson = errors.New("仅销售可以添加推荐")
	// ErrProductNotFound 商品不存在或未上架
	ErrProductNotFound = errors.New("商品不存在或未上架")
)

// maxBatchModels 单次批量推荐去重后的数量上限
const maxBatchModels = 50

// NewBatchID 生成新的推荐批次 ID（当前时间戳秒）
func NewBatchID() int64 {
	return time.Now().Unix()
}

// AddFavorite 添加单条推荐（幂等）
// 仅销售可操作；目标用户不存在时占位创建；重复推荐静默成功。
// batchID 为空时生成新批次，否则复用调用方传入的批次（允许跨请求续同一批）
func AddFavorite(db *gorm.DB, openID, frameModel string, batchID *int64) error {
	if !IsSalesperson(db, openID) {
		return ErrNotSalesperson
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := ensureUser(tx, openID); err != nil {
			return err
		}

		var product models.Product
		err := tx.First(&product, "frame_model = ? AND is_active = ?", frameModel, models.ActiveFlagYes).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		id := NewBatchID()
		if batchID != nil {
			id = *batchID
		}
		now := time.Now()

		var exists models.Favorite
		err = tx.First(&exists, "open_id = ? AND frame_model = ?", openID, frameModel).Error
		if err == nil {
			return nil // 幂等：已推荐过
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.Favorite{
			OpenID:     openID,
			FrameModel: frameModel,
			BatchID:    &id,
			BatchTime:  &now,
		}).Error
	})
}

// RemoveFavorite 取消推荐；条目不存在不算错误
func RemoveFavorite(db *gorm.DB, openID, frameModel string) error {
	return db.Where("open_id = ? AND frame_model = ?", openID, frameModel).
		Delete(&models.Favorite{}).Error
}

// BatchResult 批量推荐的执行结果
type BatchResult struct {
	Added   int   `json:"added"`
	Reset   bool  `json:"reset"`
	BatchID int64 `json:"batch_id,omitempty"`
}

// DedupModels 规范化型号列表：去空白、去重、保序，封顶 max 条
func DedupModels(items []string, max int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, raw := range items {
		m := strings.TrimSpace(raw)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) >= max {
			break
		}
	}
	return out
}

// AddFavoritesBatch 批量添加推荐
// reset=true 且操作者为销售时先清空该用户全部推荐再整批写入（替换语义），
// 非销售请求 reset 静默降级为幂等添加。无效或未上架的型号被忽略
func AddFavoritesBatch(db *gorm.DB, openID string, frameModels []string, reset bool) (*BatchResult, error) {
	// 重置仅对销售角色生效
	if reset && !IsSalesperson(db, openID) {
		reset = false
	}

	uniq := DedupModels(frameModels, maxBatchModels)
	result := &BatchResult{Reset: reset}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := ensureUser(tx, openID); err != nil {
			return err
		}

		if len(uniq) == 0 {
			if reset {
				// 重置且传空列表：清空推荐
				return tx.Where("open_id = ?", openID).Delete(&models.Favorite{}).Error
			}
			return nil
		}

		// 过滤出有效（上架）商品
		var valid []string
		if err := tx.Model(&models.Product{}).
			Where("is_active = ? AND frame_model IN ?", models.ActiveFlagYes, uniq).
			Pluck("frame_model", &valid).Error; err != nil {
			return err
		}
		validSet := make(map[string]struct{}, len(valid))
		for _, m := range valid {
			validSet[m] = struct{}{}
		}

		batchID := NewBatchID()
		batchTime := time.Now()
		result.BatchID = batchID

		var existSet map[string]struct{}
		if reset {
			// 替换推荐：先清空
			if err := tx.Where("open_id = ?", openID).Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			existSet = map[string]struct{}{}
		} else {
			var existing []string
			if err := tx.Model(&models.Favorite{}).
				Where("open_id = ? AND frame_model IN ?", openID, valid).
				Pluck("frame_model", &existing).Error; err != nil {
				return err
			}
			existSet = make(map[string]struct{}, len(existing))
			for _, m := range existing {
				existSet[m] = struct{}{}
			}
		}

		for _, m := range uniq {
			if _, ok := validSet[m]; !ok {
				continue
			}
			if _, ok := existSet[m]; ok {
				continue
			}
			fav := models.Favorite{
				OpenID:     openID,
				FrameModel: m,
				BatchID:    &batchID,
				BatchTime:  &batchTime,
			}
			if err := tx.Create(&fav).Error; err != nil {
				return err
			}
			result.Added++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
