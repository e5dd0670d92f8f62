// errors.go
package coil

import "errors"

var (
	// 計算開始前に弾くパラメータ不正
	ErrInvalidGeometry = errors.New("invalid geometry config")

	// 評価点がセグメントと一致（距離 ~ 0）
	ErrNumericalSingularity = errors.New("numerical singularity")

	// ピッチ/線径 <= 1 （巻線が重なっている）
	ErrGeometricOverlap = errors.New("geometric overlap")

	// L <= 0 または C <= 0
	ErrNonPhysical = errors.New("non-physical result")
)
