package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrInvalidInput 调用方参数错误，不应自动重试
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 引用的记录不存在
	ErrNotFound = errors.New("not found")
	// ErrRequestClosed 筹款请求已关闭，拒绝捐赠
	ErrRequestClosed = errors.New("funding request closed")
	// ErrConflict 并发冲突重试次数耗尽，调用方可重试
	ErrConflict = errors.New("concurrent update conflict")
	// ErrStoreUnavailable 存储暂时不可用，可退避重试
	ErrStoreUnavailable = errors.New("store unavailable")

	// errSerialization 事务串行化失败，在账本内部重试
	errSerialization = errors.New("serialization failure")
)

// IsRetryable 判断错误是否可由调用方重试
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrStoreUnavailable)
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// storeError 将存储层错误归类到业务错误
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if classified(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if isSerializationFailure(err) {
		return fmt.Errorf("%s: %w: %w", op, errSerialization, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// classified 错误是否已归类
func classified(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNotFound, ErrRequestClosed, ErrConflict, ErrStoreUnavailable, errSerialization} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// isSerializationFailure postgres 串行化/死锁/锁等待失败，或 sqlite 忙
func isSerializationFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
