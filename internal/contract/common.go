package contract

import "github.com/alexanderramin/timestudy/internal/msa"

type AnalysisResult = msa.Result

type Warning = msa.Warning

type WarningCode = msa.WarningCode

const (
	WarnDesignImbalance  WarningCode = msa.WarnDesignImbalance
	WarnNegativeVariance WarningCode = msa.WarnNegativeVariance
	WarnOutlier          WarningCode = msa.WarnOutlier
)

type FallbackReason = msa.FallbackReason

type WorkType = msa.WorkType
