package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── PostgreSQL TEXT[] カスタム型 ──

// StringArray は PostgreSQL TEXT[] に対応し、GORM の Scanner/Valuer を実装する。
// participant_events.memos（イベント毎のメモ一覧）で使用する。
type StringArray []string

// Scan は PostgreSQL の {a,b,c} 形式テキストを []string に変換する。
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("StringArray.Scan: unsupported type %T", src)
	}
	s = strings.Trim(s, "{}")
	if s == "" {
		*a = StringArray{}
		return nil
	}
	parts := splitArrayLiteral(s)
	arr := make(StringArray, 0, len(parts))
	for _, p := range parts {
		arr = append(arr, unquoteArrayElement(p))
	}
	*a = arr
	return nil
}

// Value は []string を PostgreSQL の {a,b,c} 形式テキストに変換する。
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = quoteArrayElement(s)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// splitArrayLiteral は配列リテラルをカンマで分割する。
// ダブルクォート内のカンマは区切りとして扱わない。
func splitArrayLiteral(s string) []string {
	var parts []string
	var sb strings.Builder
	inQuote := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			sb.WriteRune(r)
			escaped = true
		case r == '"':
			sb.WriteRune(r)
			inQuote = !inQuote
		case r == ',' && !inQuote:
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	parts = append(parts, sb.String())
	return parts
}

func quoteArrayElement(s string) string {
	if s == "" || strings.ContainsAny(s, `,"{}\ `) {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		return `"` + s + `"`
	}
	return s
}

func unquoteArrayElement(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}

// BaseModel 共通監査フィールド（各業務モデルに埋め込む）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
