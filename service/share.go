package service

import (
	"errors"
	"strings"
	"time"

	"eyewear/models"

	"gorm.io/gorm"
)

// 分享推送相关错误
var (
	// ErrSalespersonNotFound 发起者未在销售表中登记
	ErrSalespersonNotFound = errors.New("销售不存在")
	// ErrShareNotFound 分享记录不存在
	ErrShareNotFound = errors.New("分享记录不存在")
	// ErrEmptyProductList 去重后商品列表为空
	ErrEmptyProductList = errors.New("商品列表不能为空")
)

// maxShareNote 分享备注最大长度（按字符计）
const maxShareNote = 10

// TruncateNote 备注按字符截断到上限
func TruncateNote(note string) string {
	note = strings.TrimSpace(note)
	runes := []rune(note)
	if len(runes) > maxShareNote {
		return string(runes[:maxShareNote])
	}
	return note
}

// CreateShare 销售发起一次分享推送
// 商品列表去重保序、上限 50；dedupKey 非空时按键幂等：
// 已存在同键记录则原样返回（包括并发创建撞唯一索引后的回查），不产生第二行
// 返回值 dedup 表示是否命中已有记录
func CreateShare(db *gorm.DB, salespersonOpenID string, productList []string, note, dedupKey string) (rec *models.SalesShare, dedup bool, err error) {
	if !IsSalesperson(db, salespersonOpenID) {
		return nil, false, ErrSalespersonNotFound
	}

	clean := DedupModels(productList, maxBatchModels)
	if len(clean) == 0 {
		return nil, false, ErrEmptyProductList
	}

	dedupKey = strings.TrimSpace(dedupKey)
	if dedupKey != "" {
		var exist models.SalesShare
		if err := db.First(&exist, "dedup_key = ?", dedupKey).Error; err == nil {
			return &exist, true, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	share := &models.SalesShare{
		SalespersonOpenID: salespersonOpenID,
		ProductList:       clean,
		Note:              TruncateNote(note),
		PushTime:          time.Now(),
		CustomerOpenIDs:   models.StringList{},
	}
	if dedupKey != "" {
		share.DedupKey = &dedupKey
	}

	if err := db.Create(share).Error; err != nil {
		// 并发同键创建触发唯一约束冲突：回查并返回已提交的那条
		if dedupKey != "" {
			var exist models.SalesShare
			if err2 := db.First(&exist, "dedup_key = ?", dedupKey).Error; err2 == nil {
				return &exist, true, nil
			}
		}
		return nil, false, err
	}
	return share, false, nil
}

// applyOpen 把一次打开事件并入分享记录
// 重复打开者不做任何变更；首次打开者进集合并同步更新计数与时间戳
// 返回是否发生了变更
func applyOpen(rec *models.SalesShare, customerOpenID string, now time.Time) bool {
	if rec.CustomerOpenIDs.Contains(customerOpenID) {
		return false
	}
	rec.CustomerOpenIDs = append(rec.CustomerOpenIDs, customerOpenID)
	rec.OpenCount = len(rec.CustomerOpenIDs)
	if rec.FirstOpenTime == nil {
		t := now
		rec.FirstOpenTime = &t
	}
	t := now
	rec.LastOpenTime = &t
	rec.IsOpened = rec.OpenCount > 0
	return true
}

// RecordOpenByID 按分享 ID 记录客户打开；重复打开静默忽略
// 返回更新后的记录与是否发生变更
func RecordOpenByID(db *gorm.DB, shareID uint, customerOpenID string) (*models.SalesShare, bool, error) {
	return recordOpen(db, "id = ?", shareID, customerOpenID)
}

// RecordOpenByDedupKey 按 dedup_key 记录打开（未携带 share_id 的分享路径）
func RecordOpenByDedupKey(db *gorm.DB, dedupKey, customerOpenID string) (*models.SalesShare, bool, error) {
	return recordOpen(db, "dedup_key = ?", dedupKey, customerOpenID)
}

func recordOpen(db *gorm.DB, cond string, condArg interface{}, customerOpenID string) (*models.SalesShare, bool, error) {
	var rec models.SalesShare
	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, cond, condArg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShareNotFound
			}
			return err
		}
		if !applyOpen(&rec, customerOpenID, time.Now()) {
			return nil
		}
		changed = true
		// 打开者集合与计数、时间戳在同一事务里一起落库
		return tx.Model(&rec).Updates(map[string]interface{}{
			"customer_open_ids": rec.CustomerOpenIDs,
			"open_count":        rec.OpenCount,
			"is_opened":         rec.IsOpened,
			"first_open_time":   rec.FirstOpenTime,
			"last_open_time":    rec.LastOpenTime,
		}).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &rec, changed, nil
}

// MarkShareSent 标记分享已触发发送
// 每次调用都递增 sent_count（重复调用也计数），并刷新 last_sent_time
func MarkShareSent(db *gorm.DB, shareID uint) (*models.SalesShare, error) {
	var rec models.SalesShare
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", shareID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShareNotFound
			}
			return err
		}
		now := time.Now()
		rec.IsSent = true
		rec.SentCount++
		rec.LastSentTime = &now
		return tx.Model(&rec).Updates(map[string]interface{}{
			"is_sent":        true,
			"sent_count":     rec.SentCount,
			"last_sent_time": rec.LastSentTime,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
