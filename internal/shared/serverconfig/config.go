package serverconfig

import (
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

func Load(cfgName ...string) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	// 约定：
	// 1) 传入路径（相对/绝对）则优先使用；
	// 2) 否则从当前目录开始向上查找 configs/conf.yml。
	name := ""
	if len(cfgName) > 0 {
		name = cfgName[0]
	}
	if name != "" {
		if filepath.IsAbs(name) {
			load(name)
			return
		}
		load(filepath.Join(curDir, name))
		return
	}

	load(findConfigUpward(curDir))
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}
