package user

// User 用户实体
// 设计说明:
// 1. 密码以bcrypt哈希存储,实体不暴露明文
// 2. 领域实体不带GORM tag(infrastructure层的Repository负责映射)
type User struct {
	ID             uint
	Username       string
	HashedPassword string
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword string) *User {
	return &User{
		Username:       username,
		HashedPassword: hashedPassword,
	}
}
