package repository

import "errors"

// 見つからないを全リポジトリで統一
var ErrNotFound = errors.New("not found")
