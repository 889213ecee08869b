package dto

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Ip       string `json:"-"`
}

type LoginResp struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	UId         int64  `json:"uid"`
	Session     string `json:"session"` // token
}

type RegisterReq struct {
	Username    string `json:"username" binding:"required,min=4,max=20"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required,max=30"`
}
