package errors

import "errors"

// 场景模型的错误码
var (
	// ErrInstanceNotFound 实例不属于该层
	ErrInstanceNotFound = NewError(errors.New("instance not found in layer"), "SCENE-001")
	// ErrLayerNotFound 层不属于该地图
	ErrLayerNotFound = NewError(errors.New("layer not found in map"), "SCENE-002")
	// ErrMapNotFound 地图不属于该模型
	ErrMapNotFound = NewError(errors.New("map not found in model"), "SCENE-003")
	// ErrListenerNotFound 监听者没有注册或已经移除
	ErrListenerNotFound = NewError(errors.New("listener not registered"), "SCENE-004")
	// ErrMalformedQuery 位置查询字符串无法解析
	ErrMalformedQuery = NewError(errors.New("malformed location query"), "SCENE-005")
	// ErrEmptyLayer 层里没有任何实例
	ErrEmptyLayer = NewError(errors.New("layer has no instances"), "SCENE-006")
	// ErrDuplicateID id 重复
	ErrDuplicateID = NewError(errors.New("duplicate identifier"), "SCENE-007")
	// ErrNilObject 创建实例时没有模板
	ErrNilObject = NewError(errors.New("instance requires an object"), "SCENE-008")
	// ErrInvalidGrid 网格不合法
	ErrInvalidGrid = NewError(errors.New("invalid cell grid"), "SCENE-009")
	// ErrTypeMismatch 属性类型不匹配
	ErrTypeMismatch = NewError(errors.New("attribute type mismatch"), "SCENE-010")
	// ErrAttrNotFound 属性不存在
	ErrAttrNotFound = NewError(errors.New("attribute not found"), "SCENE-011")
	// ErrInvalidMultiplier 时间倍率不合法
	ErrInvalidMultiplier = NewError(errors.New("time multiplier must not be negative"), "SCENE-012")
	// ErrDetached 实例已经从层中删除
	ErrDetached = NewError(errors.New("instance detached from layer"), "SCENE-013")
)
