package rpc

import (
	polyrunv1 "polyrun/api/gen/polyrun/v1"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/service"
)

func functionsFromProto(in []*polyrunv1.FunctionDef) []service.FunctionDef {
	out := make([]service.FunctionDef, 0, len(in))
	for _, fn := range in {
		out = append(out, service.FunctionDef{
			Name:        fn.GetName(),
			InputNames:  fn.GetInputNames(),
			InputTypes:  fn.GetInputTypes(),
			OutputNames: fn.GetOutputNames(),
			OutputTypes: fn.GetOutputTypes(),
		})
	}
	return out
}

func functionsToProto(in []service.FunctionDef) []*polyrunv1.FunctionDef {
	out := make([]*polyrunv1.FunctionDef, 0, len(in))
	for _, fn := range in {
		out = append(out, &polyrunv1.FunctionDef{
			Name:        fn.Name,
			InputNames:  fn.InputNames,
			InputTypes:  fn.InputTypes,
			OutputNames: fn.OutputNames,
			OutputTypes: fn.OutputTypes,
		})
	}
	return out
}

func executeFromProto(req *polyrunv1.ExecuteRequest) service.ExecuteRequest {
	cases := make([]service.TestCaseDef, 0, len(req.GetTestCases()))
	for _, tc := range req.GetTestCases() {
		cases = append(cases, service.TestCaseDef{
			Function:             tc.GetFunction(),
			InputValues:          tc.GetInputValues(),
			ExpectedOutputValues: tc.GetExpectedOutputValues(),
		})
	}
	return service.ExecuteRequest{
		Language:  req.GetLanguage(),
		Fragment:  req.GetFragment(),
		Functions: functionsFromProto(req.GetFunctions()),
		TestCases: cases,
	}
}

func executeToProto(req *service.ExecuteRequest) *polyrunv1.ExecuteRequest {
	cases := make([]*polyrunv1.TestCaseDef, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		cases = append(cases, &polyrunv1.TestCaseDef{
			Function:             tc.Function,
			InputValues:          tc.InputValues,
			ExpectedOutputValues: tc.ExpectedOutputValues,
		})
	}
	return &polyrunv1.ExecuteRequest{
		Language:  req.Language,
		Fragment:  req.Fragment,
		Functions: functionsToProto(req.Functions),
		TestCases: cases,
	}
}

// Timings travel as doubles, so NaN survives the round trip.
func resultsToProto(in []model.Result) []*polyrunv1.Result {
	out := make([]*polyrunv1.Result, 0, len(in))
	for _, r := range in {
		pb := &polyrunv1.Result{Success: r.Success, Fatal: r.Fatal, Output: r.Output}
		if r.Performance != nil {
			pb.Performance = &polyrunv1.Performance{
				TotalCompileMillis:      r.Performance.TotalCompileMillis,
				TotalExecutionMillis:    r.Performance.TotalExecutionMillis,
				TestCaseExecutionMillis: r.Performance.TestCaseExecutionMillis,
			}
		}
		out = append(out, pb)
	}
	return out
}

func resultsFromProto(in []*polyrunv1.Result) []model.Result {
	out := make([]model.Result, 0, len(in))
	for _, r := range in {
		res := model.Result{Success: r.GetSuccess(), Fatal: r.GetFatal(), Output: r.GetOutput()}
		if p := r.GetPerformance(); p != nil {
			res.Performance = &model.PerformanceIndicators{
				TotalCompileMillis:      p.GetTotalCompileMillis(),
				TotalExecutionMillis:    p.GetTotalExecutionMillis(),
				TestCaseExecutionMillis: p.GetTestCaseExecutionMillis(),
			}
		}
		out = append(out, res)
	}
	return out
}

func versionToProto(info model.VersionInfo) *polyrunv1.VersionInfo {
	return &polyrunv1.VersionInfo{
		LanguageVersion: info.LanguageVersion,
		CompilerName:    info.CompilerName,
		CompilerVersion: info.CompilerVersion,
		PlatformName:    info.PlatformName,
		PlatformVersion: info.PlatformVersion,
		PlatformArch:    info.PlatformArch,
	}
}

func versionFromProto(info *polyrunv1.VersionInfo) model.VersionInfo {
	return model.VersionInfo{
		LanguageVersion: info.GetLanguageVersion(),
		CompilerName:    info.GetCompilerName(),
		CompilerVersion: info.GetCompilerVersion(),
		PlatformName:    info.GetPlatformName(),
		PlatformVersion: info.GetPlatformVersion(),
		PlatformArch:    info.GetPlatformArch(),
	}
}
