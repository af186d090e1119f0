// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 目前只有管理員 session 驗證：解析 cookie 中的 token，
// 擋下沒有登入的管理操作請求。
package middleware
