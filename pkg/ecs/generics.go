package ecs

import (
	"reflect"
	"slices"
)

// typeOf 返回类型参数 T 的 reflect.Type
// 与 reflect.TypeOf(component) 对同一个具体类型给出相同结果
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件，已存在的同类型组件会被替换
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.addComponent(id, typeOf[T](), component)
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, ok := em.getComponent(id, typeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.getComponent(id, typeOf[T]())
	return ok
}

// RemoveComponent 移除实体的 T 类型组件（不存在时是空操作）
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.removeComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 T 类型组件的实体（按 ID 升序，保证遍历顺序稳定）
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	ids := em.entitiesWith(typeOf[T]())
	slices.Sort(ids)
	return ids
}
