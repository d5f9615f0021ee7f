package config

// SafeErrorMessage 根据运行模式决定返回给客户端的错误文案
// release 模式下隐藏内部错误详情，避免信息泄露；其余模式透传底层错误
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
