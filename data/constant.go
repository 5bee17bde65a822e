package data

const (
	DateTimePattern = "2006-01-02 15:04:05"

	RunModeDev     = "dev"
	RunModeTest    = "test"
	RunModeRelease = "release"

	//默认bin数据文件
	DefaultBinDataFile = "data/bin_data.csv"
	//bin数据下载地址
	DefaultBinDataURL = "https://raw.githubusercontent.com/Junaid433/LibBIN/main/data/bin_data.csv"

	Version = "1.0.0"
)
