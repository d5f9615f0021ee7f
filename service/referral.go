package service

import (
	"errors"
	"strings"

	"eyewear/models"

	"gorm.io/gorm"
)

// 推荐关系相关错误
var (
	// ErrSelfReference 指针字段不允许指向自己
	ErrSelfReference = errors.New("不能设置为自己")
	// ErrAlreadySet 只允许设置一次的字段已有不同取值
	ErrAlreadySet = errors.New("已设置且不允许修改")
)

// OrganicSentinel 无介绍人/无销售时对外返回的兜底名称
const OrganicSentinel = "自然"

// SetOnceOutcome 只写一次指针字段的状态转移结果
type SetOnceOutcome int

const (
	// SetOnceApplied 字段原为空，本次写入生效
	SetOnceApplied SetOnceOutcome = iota
	// SetOnceNoop 字段已是同值，幂等成功且无变更
	SetOnceNoop
	// SetOnceConflict 字段已有不同取值，拒绝覆盖
	SetOnceConflict
)

// ResolveSetOnce 只写一次指针字段的状态转移函数
// ownID: 字段所属用户；current: 当前存储值（空串表示未设置）；incoming: 待写入值
// 自指是唯一的前置校验失败；其余按 UNSET/SET 两态判定
func ResolveSetOnce(ownID, current, incoming string) (SetOnceOutcome, error) {
	if incoming == ownID {
		return SetOnceConflict, ErrSelfReference
	}
	current = strings.TrimSpace(current)
	if current == "" {
		return SetOnceApplied, nil
	}
	if current == incoming {
		return SetOnceNoop, nil
	}
	return SetOnceConflict, ErrAlreadySet
}

// ensureUser 占位创建用户（任何引用到未知 open_id 的入口都会先走这里）
func ensureUser(tx *gorm.DB, openID string) (*models.User, error) {
	var user models.User
	err := tx.Where(models.User{OpenID: openID}).
		Attrs(models.User{OpenID: openID}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetReferrer 设置用户介绍人（仅允许设置一次）
func SetReferrer(db *gorm.DB, openID, referrerOpenID string) (*models.User, error) {
	var user *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		u, err := ensureUser(tx, openID)
		if err != nil {
			return err
		}
		outcome, err := ResolveSetOnce(openID, u.ReferrerOpenID, referrerOpenID)
		if err != nil {
			return err
		}
		if outcome == SetOnceApplied {
			u.ReferrerOpenID = referrerOpenID
			if err := tx.Model(u).Update("referrer_open_id", referrerOpenID).Error; err != nil {
				return err
			}
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetMySales 设置用户所属销售（仅允许设置一次）
func SetMySales(db *gorm.DB, openID, mySalesOpenID string) (*models.User, error) {
	var user *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		u, err := ensureUser(tx, openID)
		if err != nil {
			return err
		}
		outcome, err := ResolveSetOnce(openID, u.MySalesOpenID, mySalesOpenID)
		if err != nil {
			return err
		}
		if outcome == SetOnceApplied {
			u.MySalesOpenID = mySalesOpenID
			if err := tx.Model(u).Update("my_sales_open_id", mySalesOpenID).Error; err != nil {
				return err
			}
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsSalesperson 判断 open_id 是否登记为销售
func IsSalesperson(db *gorm.DB, openID string) bool {
	var count int64
	if err := db.Model(&models.Salesperson{}).Where("open_id = ?", openID).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// ReferralContext 客服会话上下文
type ReferralContext struct {
	ReferrerNickname string `json:"referrer_nickname"` // 介绍人昵称，无则“自然”
	SalesName        string `json:"sales_name"`        // 介绍人所属销售姓名，无则“自然”
}

// GetReferralContext 解析某访客的客服上下文：
// 介绍人 A 的昵称，以及 A 所属销售的姓名；缺失环节一律回退兜底值而非报错
func GetReferralContext(db *gorm.DB, openID string) (*ReferralContext, error) {
	ctx := &ReferralContext{
		ReferrerNickname: OrganicSentinel,
		SalesName:        OrganicSentinel,
	}

	var user models.User
	if err := db.First(&user, "open_id = ?", openID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx, nil
		}
		return nil, err
	}
	if user.ReferrerOpenID == "" {
		return ctx, nil
	}

	var referrer models.User
	if err := db.First(&referrer, "open_id = ?", user.ReferrerOpenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx, nil
		}
		return nil, err
	}
	if nn := strings.TrimSpace(referrer.Nickname); nn != "" {
		ctx.ReferrerNickname = nn
	}
	if referrer.MySalesOpenID != "" {
		var sp models.Salesperson
		if err := db.First(&sp, "open_id = ?", referrer.MySalesOpenID).Error; err == nil {
			if name := strings.TrimSpace(sp.Name); name != "" {
				ctx.SalesName = name
			}
		}
	}
	return ctx, nil
}
