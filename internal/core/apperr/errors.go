// Package apperr はユースケース横断で利用するエラー種別を定義します。
//
// 各ユースケースのセンチネルエラーはここで定義した種別をラップするため、
// 呼び出し側は errors.Is で種別を判定できます。
package apperr

import "errors"

var (
	// ErrInvalidArgument は入力値が不正であることを表します。
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound は対象が存在しないことを表します。
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous は一意であるべき検索が複数件に一致したことを表します。
	ErrAmbiguous = errors.New("ambiguous result")
	// ErrConstraintViolation は永続化層の制約違反を表します。
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrDependencyFailure は依存先の処理が失敗したことを表します。
	ErrDependencyFailure = errors.New("dependency failure")
)
