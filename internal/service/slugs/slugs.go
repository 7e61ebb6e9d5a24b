// Package slugs 提供URL标识分配功能
// 基于标题生成可读的slug并保证表内唯一，供知识条目、主题和博客复用
package slugs

import (
	"fmt"

	"github.com/gosimple/slug"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"gorm.io/gorm"
)

// Allocate 为一条记录分配唯一slug
// 参数:
//
//	db - 数据库连接
//	table - 查重的表名，表需含slug列
//	explicit - 调用方显式提供的slug，非空时直接查重使用
//	title - 标题，explicit为空时据此生成基础slug
//	excludeID - 查重时排除的记录ID（更新场景传自身ID，创建场景传0）
//
// 返回:
//
//	string - 分配到的slug；explicit和title均为空时返回空串
//	error - explicit与现有记录冲突时返回ErrSlugTaken
//
// 生成规则：标题经音译规范化（转小写、剥离变音符、非字母数字转连字符）得到
// 基础slug，冲突时依次追加-1、-2直至唯一。唯一性为全表范围，不按用户划分。
func Allocate(db *gorm.DB, table, explicit, title string, excludeID uint) (string, error) {
	if explicit != "" {
		taken, err := slugTaken(db, table, explicit, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", apperrors.NewByCode(apperrors.ErrSlugTaken)
		}
		return explicit, nil
	}

	if title == "" {
		return "", nil
	}

	base := slug.Make(title)
	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := slugTaken(db, table, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// slugTaken 检查slug在表内是否已被占用
func slugTaken(db *gorm.DB, table, candidate string, excludeID uint) (bool, error) {
	var count int64
	query := db.Table(table).Where("slug = ?", candidate)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return count > 0, nil
}
