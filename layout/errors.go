package layout

import "fmt"

// ResourceLoadError 表示底图或字体文件缺失、无法读取或无法解析。
type ResourceLoadError struct {
	Resource string
	Err      error
}

func (e *ResourceLoadError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("加载资源失败: %v", e.Err)
	}
	return fmt.Sprintf("加载资源 %s 失败: %v", e.Resource, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// InvalidCanvasError 表示画布宽高不是正数。
type InvalidCanvasError struct {
	Width  int
	Height int
}

func (e *InvalidCanvasError) Error() string {
	return fmt.Sprintf("画布尺寸无效: %dx%d", e.Width, e.Height)
}
