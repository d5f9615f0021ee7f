package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 访客 IP 粗粒度定位，仅供后台展示
// 使用 ip-api.com 免费接口（有限流），结果进程内缓存；查询失败时回退为原始 IP

const ipLocationURL = "http://ip-api.com/json/"

// 定位是旁路信息，超时设得很短，避免拖慢后台页面
var ipLocationHTTPClient = &http.Client{Timeout: 1500 * time.Millisecond}

var (
	ipLocationMu    sync.RWMutex
	ipLocationCache = map[string]string{}
)

// IsPrivateIP 判断是否内网/环回地址
func IsPrivateIP(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return true
	}
	if strings.HasPrefix(ip, "10.") ||
		strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "127.") ||
		strings.HasPrefix(ip, "::1") {
		return true
	}
	if strings.HasPrefix(ip, "172.") {
		parts := strings.Split(ip, ".")
		if len(parts) > 1 {
			if second, err := strconv.Atoi(parts[1]); err == nil && second >= 16 && second <= 31 {
				return true
			}
		}
	}
	return false
}

// IPLocation 查询 IP 归属地（省 市），带进程内缓存
// 内网地址直接返回"内网IP"；外部服务不可用时返回原始 IP
func IPLocation(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" || IsPrivateIP(ip) {
		return "内网IP"
	}

	ipLocationMu.RLock()
	cached, ok := ipLocationCache[ip]
	ipLocationMu.RUnlock()
	if ok {
		return cached
	}

	loc := lookupIPLocation(ip)
	if loc == "" {
		return ip
	}
	ipLocationMu.Lock()
	ipLocationCache[ip] = loc
	ipLocationMu.Unlock()
	return loc
}

func lookupIPLocation(ip string) string {
	resp, err := ipLocationHTTPClient.Get(ipLocationURL + ip + "?lang=zh-CN&fields=status,regionName,city")
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	var payload struct {
		Status     string `json:"status"`
		RegionName string `json:"regionName"`
		City       string `json:"city"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Status != "success" {
		return ""
	}
	loc := strings.TrimSpace(strings.TrimSpace(payload.RegionName) + " " + strings.TrimSpace(payload.City))
	if loc == "" {
		return ip
	}
	return loc
}
