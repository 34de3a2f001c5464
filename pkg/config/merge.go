package config

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// MergeConfig 合并配置
// - 如果 dst 和 src 都为 nil，返回错误
// - 如果 dst 为 nil，返回 src
// - 如果 src 为 nil，返回 dst
// - 如果都不为 nil，src 的非零值覆盖 dst 的值，返回合并后的 dst
//
// 各模块的 New(cfg) 构造函数用它把用户的部分配置叠在 DefaultConfig() 上。
func MergeConfig[T any](dst, src *T) (*T, error) {
	// 两者都为 nil 才报错
	if dst == nil && src == nil {
		return nil, errors.Wrap(ErrNilConfig, "both dst and src are nil")
	}

	// dst 为 nil，返回 src
	if dst == nil {
		return src, nil
	}

	// src 为 nil，返回 dst
	if src == nil {
		return dst, nil
	}

	// 两者都不为 nil，执行深度合并
	dstValue := reflect.ValueOf(dst).Elem()
	srcValue := reflect.ValueOf(src).Elem()

	if err := mergeValues(dstValue, srcValue); err != nil {
		return nil, err
	}

	return dst, nil
}

// mergeValues 递归合并两个 reflect.Value
func mergeValues(dst, src reflect.Value) error {
	// 如果 src 是零值，不进行覆盖
	if !src.IsValid() || isZeroValue(src) {
		return nil
	}

	switch dst.Kind() {
	case reflect.Struct:
		return mergeStruct(dst, src)
	case reflect.Map:
		return mergeMap(dst, src)
	case reflect.Slice:
		return mergeSlice(dst, src)
	case reflect.Ptr:
		return mergePointer(dst, src)
	default:
		// 基本类型直接覆盖
		if dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

// mergeStruct 合并结构体
func mergeStruct(dst, src reflect.Value) error {
	if src.Kind() != reflect.Struct {
		return errors.New("src is not a struct")
	}

	srcType := src.Type()
	for i := 0; i < src.NumField(); i++ {
		srcField := src.Field(i)
		fieldType := srcType.Field(i)

		// 跳过未导出的字段
		if !fieldType.IsExported() {
			continue
		}

		dstField := dst.FieldByName(fieldType.Name)
		if !dstField.IsValid() || !dstField.CanSet() {
			continue
		}

		// 递归合并字段
		if err := mergeValues(dstField, srcField); err != nil {
			return errors.Wrapf(err, "failed to merge field %s", fieldType.Name)
		}
	}

	return nil
}

// mergeMap 合并 map
func mergeMap(dst, src reflect.Value) error {
	if src.Kind() != reflect.Map {
		return errors.New("src is not a map")
	}

	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}

	iter := src.MapRange()
	for iter.Next() {
		key := iter.Key()
		srcValue := iter.Value()

		dstValue := dst.MapIndex(key)

		if dstValue.IsValid() {
			// dst 中已存在该 key，递归合并
			newValue := reflect.New(dst.Type().Elem()).Elem()
			newValue.Set(dstValue)

			if err := mergeValues(newValue, srcValue); err != nil {
				return err
			}

			dst.SetMapIndex(key, newValue)
		} else {
			dst.SetMapIndex(key, srcValue)
		}
	}

	return nil
}

// mergeSlice 合并切片（src 整体覆盖 dst，不做元素级合并）
func mergeSlice(dst, src reflect.Value) error {
	if src.Kind() != reflect.Slice {
		return errors.New("src is not a slice")
	}

	if dst.CanSet() {
		dst.Set(src)
	}

	return nil
}

// mergePointer 合并指针
func mergePointer(dst, src reflect.Value) error {
	if src.Kind() != reflect.Ptr {
		return errors.New("src is not a pointer")
	}

	if src.IsNil() {
		return nil
	}

	if dst.IsNil() {
		dst.Set(reflect.New(dst.Type().Elem()))
	}

	// 递归合并指针指向的值
	return mergeValues(dst.Elem(), src.Elem())
}

// isZeroValue 检查是否为零值
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Ptr, reflect.Interface, reflect.Func:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Struct:
		// 结构体需要检查所有字段
		zero := reflect.Zero(v.Type()).Interface()
		return reflect.DeepEqual(v.Interface(), zero)
	default:
		return false
	}
}
