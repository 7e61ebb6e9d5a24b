// Package i18n 提供国际化支持
// 负责管理应用程序的语言包和错误消息翻译
package i18n

import (
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/vi"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/weiwangfds/lifenote/internal/logger"
)

// 支持的语言
const (
	LangEnUS = "en-US"
	LangViVN = "vi-VN"
	LangZhCN = "zh-CN"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal Server Error",
			"invalid_params":        "Invalid Parameters",
			"unauthorized":          "Unauthorized",
			"forbidden":             "Forbidden",
			"not_found":             "Resource Not Found",
			"method_not_allowed":    "Method Not Allowed",
			"too_many_requests":     "Too Many Requests",
			"service_unavailable":   "Service Unavailable",

			"user_not_found":      "User Not Found",
			"username_taken":      "Username Already Taken",
			"invalid_credentials": "Invalid Username or Password",
			"invalid_token":       "Invalid or Expired Token",

			"entry_not_found":    "Entry Not Found",
			"topic_not_found":    "Topic Not Found",
			"resource_not_found": "Resource Not Found",
			"slug_taken":         "Slug Already In Use",
			"invalid_parent":     "Invalid Parent ID",
			"parent_cycle":       "Parent Assignment Would Create a Cycle",
			"title_required":     "Title Is Required",
			"content_required":   "Content Is Required",
			"topic_required":     "Topic Is Required",

			"post_not_found":     "Post Not Found",
			"category_not_found": "Category Not Found",

			"task_not_found":      "Task Not Found",
			"session_not_found":   "Study Session Not Found",
			"list_item_not_found": "List Item Not Found",

			"database_query":        "Database Query Error",
			"database_insert":       "Database Insert Error",
			"database_update":       "Database Update Error",
			"database_delete":       "Database Delete Error",
			"database_transaction":  "Database Transaction Error",
			"record_not_found":      "Record Not Found",
			"record_already_exists": "Record Already Exists",

			"unknown_error": "Unknown Error",
		},
		LangViVN: {
			"success":               "Thành công",
			"internal_server_error": "Lỗi máy chủ nội bộ",
			"invalid_params":        "Tham số không hợp lệ",
			"unauthorized":          "Chưa xác thực",
			"forbidden":             "Không có quyền truy cập",
			"not_found":             "Không tìm thấy tài nguyên",
			"method_not_allowed":    "Phương thức không được phép",
			"too_many_requests":     "Quá nhiều yêu cầu",
			"service_unavailable":   "Dịch vụ không khả dụng",

			"user_not_found":      "Không tìm thấy người dùng",
			"username_taken":      "Tên đăng nhập đã tồn tại",
			"invalid_credentials": "Tên đăng nhập hoặc mật khẩu không đúng",
			"invalid_token":       "Token không hợp lệ hoặc đã hết hạn",

			"entry_not_found":    "Không tìm thấy entry",
			"topic_not_found":    "Không tìm thấy chủ đề",
			"resource_not_found": "Không tìm thấy tài nguyên",
			"slug_taken":         "Slug đã được sử dụng",
			"invalid_parent":     "Parent ID không hợp lệ",
			"parent_cycle":       "Gán parent sẽ tạo vòng lặp",
			"title_required":     "Tiêu đề là bắt buộc",
			"content_required":   "Nội dung là bắt buộc",
			"topic_required":     "Chủ đề là bắt buộc",

			"post_not_found":     "Không tìm thấy bài viết",
			"category_not_found": "Không tìm thấy danh mục",

			"task_not_found":      "Không tìm thấy công việc",
			"session_not_found":   "Không tìm thấy phiên học",
			"list_item_not_found": "Không tìm thấy mục danh sách",

			"database_query":        "Lỗi truy vấn cơ sở dữ liệu",
			"database_insert":       "Lỗi thêm dữ liệu",
			"database_update":       "Lỗi cập nhật dữ liệu",
			"database_delete":       "Lỗi xóa dữ liệu",
			"database_transaction":  "Lỗi giao dịch cơ sở dữ liệu",
			"record_not_found":      "Không tìm thấy bản ghi",
			"record_already_exists": "Bản ghi đã tồn tại",

			"unknown_error": "Lỗi không xác định",
		},
		LangZhCN: {
			"success":               "成功",
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"unauthorized":          "未授权",
			"forbidden":             "禁止访问",
			"not_found":             "资源未找到",
			"method_not_allowed":    "方法不允许",
			"too_many_requests":     "请求过于频繁",
			"service_unavailable":   "服务不可用",

			"user_not_found":      "用户未找到",
			"username_taken":      "用户名已被占用",
			"invalid_credentials": "用户名或密码错误",
			"invalid_token":       "Token无效或已过期",

			"entry_not_found":    "知识条目未找到",
			"topic_not_found":    "主题未找到",
			"resource_not_found": "学习资源未找到",
			"slug_taken":         "Slug已被使用",
			"invalid_parent":     "父条目ID无效",
			"parent_cycle":       "父条目指定会形成循环",
			"title_required":     "标题为必填项",
			"content_required":   "内容为必填项",
			"topic_required":     "主题为必填项",

			"post_not_found":     "文章未找到",
			"category_not_found": "分类未找到",

			"task_not_found":      "任务未找到",
			"session_not_found":   "学习记录未找到",
			"list_item_not_found": "清单条目未找到",

			"database_query":        "数据库查询错误",
			"database_insert":       "数据库插入错误",
			"database_update":       "数据库更新错误",
			"database_delete":       "数据库删除错误",
			"database_transaction":  "数据库事务错误",
			"record_not_found":      "记录未找到",
			"record_already_exists": "记录已存在",

			"unknown_error": "未知错误",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangEnUS,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器
func (i *I18n) initTranslators() {
	enUS := en_US.New()
	viVN := vi.New()
	zhCN := zh.New()
	uni := ut.New(enUS, enUS, viVN, zhCN)

	// 注册支持的语言 - 使用locale库的标识符
	langMappings := map[string]string{
		LangEnUS: "en_US",
		LangViVN: "vi",
		LangZhCN: "zh",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("Failed to init translator for %s (locale: %s)", ourLang, localeLang)
			continue
		}
		i.translators[ourLang] = trans
	}
}

// Translate 根据键和语言获取翻译
// 当前语言缺失时回退到默认语言，仍缺失时返回键本身
func (i *I18n) Translate(key, lang string) string {
	if _, exists := i.translators[lang]; !exists {
		lang = i.defaultLang
	}

	if translation, found := translations[lang][key]; found {
		return translation
	}

	if lang != i.defaultLang {
		if translation, found := translations[i.defaultLang][key]; found {
			return translation
		}
	}

	logger.Warnf("Missing translation: %s (lang: %s)", key, lang)
	return key
}

// SetDefaultLanguage 设置默认语言
func (i *I18n) SetDefaultLanguage(lang string) {
	i.defaultLang = lang
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}

// GetSupportedLanguages 获取支持的语言列表
func (i *I18n) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(i.translators))
	for lang := range i.translators {
		langs = append(langs, lang)
	}
	return langs
}
