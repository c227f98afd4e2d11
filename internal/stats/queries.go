// internal/stats/queries.go
//
// SQL projections over the Lahman historical database. The schema ships with
// the app and is read-only; table and column names follow the Lahman CSV
// import (Batting, Pitching, Appearances, People, Teams).

package stats

// rosterQuery returns the distinct players with any batting or pitching
// appearance for a team-season. The union is deduplicated by UNION itself.
const rosterQuery = `
SELECT DISTINCT b.playerID, p.nameFirst, p.nameLast
FROM Batting b
JOIN People p ON b.playerID = p.playerID
WHERE b.yearID = ? AND b.teamID = ?
UNION
SELECT DISTINCT pi.playerID, p.nameFirst, p.nameLast
FROM Pitching pi
JOIN People p ON pi.playerID = p.playerID
WHERE pi.yearID = ? AND pi.teamID = ?`

const recordQuery = `
SELECT W, L, name FROM Teams WHERE yearID = ? AND teamID = ?`

const teamsInYearQuery = `
SELECT teamID, yearID, name FROM Teams WHERE yearID = ? ORDER BY teamID`

const standingsQuery = `
SELECT teamID, name, lgID, divID, W, L
FROM Teams
WHERE yearID = ?
ORDER BY lgID, divID, W DESC`

const playerSearchQuery = `
SELECT p.playerID, p.nameFirst, p.nameLast,
  MAX(COALESCE(a.yearID, 0)) as lastYear
FROM People p
LEFT JOIN Appearances a ON a.playerID = p.playerID
WHERE p.nameFirst || ' ' || p.nameLast LIKE ?
GROUP BY p.playerID
ORDER BY lastYear DESC
LIMIT ?`

const playerBioQuery = `
SELECT playerID, nameFirst, nameLast, birthYear, debut, finalGame
FROM People WHERE playerID = ?`

const playedYearRangeQuery = `
SELECT MIN(yearID) as minYear, MAX(yearID) as maxYear FROM (
  SELECT yearID FROM Batting WHERE playerID = ?
  UNION
  SELECT yearID FROM Pitching WHERE playerID = ?
)`

// Batting stat lines are summed across stints within a year.
const battingSelect = `
SUM(G) as G, SUM(AB) as AB, SUM(R) as R, SUM(H) as H,
SUM("2B") as doubles, SUM("3B") as triples, SUM(HR) as HR,
SUM(RBI) as RBI, SUM(BB) as BB, SUM(SO) as SO, SUM(SB) as SB`

const seasonBattingQuery = `
SELECT yearID, teamID, ` + battingSelect + `
FROM Batting WHERE playerID = ?
GROUP BY yearID, teamID ORDER BY yearID`

const careerBattingQuery = `
SELECT ` + battingSelect + ` FROM Batting WHERE playerID = ?`

const pitchingSelect = `
SUM(W) as W, SUM(L) as L, SUM(G) as G, SUM(GS) as GS, SUM(SV) as SV,
SUM(IPouts) as IPouts, SUM(SO) as SO, SUM(BB) as BB, SUM(H) as H, SUM(ER) as ER`

const seasonPitchingQuery = `
SELECT yearID, teamID, ` + pitchingSelect + `
FROM Pitching WHERE playerID = ?
GROUP BY yearID, teamID ORDER BY yearID`

const careerPitchingQuery = `
SELECT ` + pitchingSelect + ` FROM Pitching WHERE playerID = ?`

// Batters are Appearances rows where the player appeared more often in the
// field than on the mound; position game counts feed position inference.
const teamBattersQuery = `
SELECT
  a.playerID, p.nameFirst, p.nameLast, a.G_all as G,
  COALESCE(a.G_c, 0) as G_c, COALESCE(a.G_1b, 0) as G_1b,
  COALESCE(a.G_2b, 0) as G_2b, COALESCE(a.G_3b, 0) as G_3b,
  COALESCE(a.G_ss, 0) as G_ss, COALESCE(a.G_lf, 0) as G_lf,
  COALESCE(a.G_cf, 0) as G_cf, COALESCE(a.G_rf, 0) as G_rf,
  COALESCE(a.G_dh, 0) as G_dh,
  b.HR, b.RBI, b.SB, b.H, b.AB
FROM Appearances a
JOIN People p ON a.playerID = p.playerID
LEFT JOIN (
  SELECT playerID, teamID, yearID,
    SUM(HR) as HR, SUM(RBI) as RBI, SUM(SB) as SB, SUM(H) as H, SUM(AB) as AB
  FROM Batting GROUP BY playerID, teamID, yearID
) b ON a.playerID = b.playerID AND a.teamID = b.teamID AND a.yearID = b.yearID
WHERE a.yearID = ? AND a.teamID = ?
  AND COALESCE(a.G_p, 0) < COALESCE(a.G_all, 0) - COALESCE(a.G_p, 0)
ORDER BY a.G_all DESC`

const teamPitchersQuery = `
SELECT
  a.playerID, p.nameFirst, p.nameLast, a.G_all as G,
  pi.GS, pi.ER, pi.IPouts, pi.SO, pi.SV
FROM Appearances a
JOIN People p ON a.playerID = p.playerID
LEFT JOIN (
  SELECT playerID, teamID, yearID,
    SUM(GS) as GS, SUM(ER) as ER, SUM(IPouts) as IPouts, SUM(SO) as SO, SUM(SV) as SV
  FROM Pitching GROUP BY playerID, teamID, yearID
) pi ON a.playerID = pi.playerID AND a.teamID = pi.teamID AND a.yearID = pi.yearID
WHERE a.yearID = ? AND a.teamID = ?
  AND COALESCE(a.G_p, 0) >= COALESCE(a.G_all, 0) - COALESCE(a.G_p, 0)
  AND COALESCE(a.G_p, 0) > 0
ORDER BY a.G_all DESC`
