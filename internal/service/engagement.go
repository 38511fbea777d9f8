package service

import (
	"Beacon/internal/pkg/util"
)

// CalculateEngagementRate 互动率 = (点赞 + 评论 + 转发) / 分母 * 100，保留两位小数。
// 分母为曝光量，曝光未知时调用方以粉丝数代替；分母为 0 时返回 0 而不是报错。
// 各平台共用同一公式，只允许分母不同，不做平台特判。
func CalculateEngagementRate(likes, comments, shares, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	total := likes + comments + shares
	return util.Round2(float64(total) / float64(denominator) * 100)
}
