package serverconfig

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	Redis      RedisConfig      `yaml:"redis" mapstructure:"redis"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	GateServer GateServerConfig `yaml:"gateserver" mapstructure:"gateserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type GateServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// GameConfig 是模拟引擎的节奏参数；数值语义见 internal/kingdom/sim 的 Tuning。
// 留空的字段由 sim.DefaultTuning 兜底。
type GameConfig struct {
	TickMS         int     `yaml:"tick_ms" mapstructure:"tick_ms"`
	SaveMS         int     `yaml:"save_ms" mapstructure:"save_ms"`
	MapSize        int     `yaml:"map_size" mapstructure:"map_size"`
	TileSize       int     `yaml:"tile_size" mapstructure:"tile_size"`
	CycleMS        int     `yaml:"cycle_ms" mapstructure:"cycle_ms"`
	NightFraction  float64 `yaml:"night_fraction" mapstructure:"night_fraction"`
	RaidIntervalMS int     `yaml:"raid_interval_ms" mapstructure:"raid_interval_ms"`
	RaidUnitMin    int     `yaml:"raid_unit_min" mapstructure:"raid_unit_min"`
}
